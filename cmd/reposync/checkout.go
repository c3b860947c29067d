package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout <name> <commit>",
		Short: "Reset a tracked repository to a locally fetched commit",
		Long: `Reset the index and working tree of a tracked repository to the commit
whose ID starts with the given prefix. This is a hard reset: uncommitted
changes in the local copy are discarded. Only commits already fetched are
eligible; run update first to fetch newer history.`,
		Example: `  reposync checkout libfoo 4f2a91c0`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(cmd, global, args[0], args[1])
		},
	}

	return cmd
}

func runCheckout(cmd *cobra.Command, global *globalOptions, name, idPrefix string) error {
	ctx := context.Background()

	ws, err := loadWorkspace(global)
	if err != nil {
		return err
	}

	entry, err := ws.entryByName(name)
	if err != nil {
		return err
	}

	repo, err := ws.open(ctx, entry)
	if err != nil {
		return err
	}

	rec, err := findCommit(ctx, repo, idPrefix)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if err := repo.UseRev(ctx, *rec); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	cmd.Printf("%s: working tree reset to %s\n", name, shortID(rec.ID))
	return nil
}
