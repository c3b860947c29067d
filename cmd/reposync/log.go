package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newLogCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <name>",
		Short: "List the locally fetched commits of a tracked repository",
		Long: `List every commit available in the local copy, oldest first. The listing
is unaware of commits not yet fetched from the remote; run update first to
see the newest history.`,
		Example: `  reposync log libfoo`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, global, args[0])
		},
	}

	return cmd
}

func runLog(cmd *cobra.Command, global *globalOptions, name string) error {
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

	commits, err := repo.ListCommits(ctx)
	if err != nil {
		return err
	}

	for _, commit := range commits {
		subject, _, _ := strings.Cut(commit.Message, "\n")
		cmd.Printf("%s  %s  %s\n", shortID(commit.ID), formatTime(commit.Timestamp), subject)
	}

	return nil
}
