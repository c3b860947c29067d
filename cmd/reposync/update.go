package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vendorsync/reposync"
)

func newUpdateCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [name...]",
		Short: "Clone or pull tracked repositories",
		Long: `Clone or pull each tracked repository so its local copy matches the most
recent remote revision. Entries with a pin are reset to the pinned commit
after updating. With no arguments every manifest entry is updated.`,
		Example: `  reposync update
  reposync update libfoo libbar`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, global, args)
		},
	}

	return cmd
}

func runUpdate(cmd *cobra.Command, global *globalOptions, names []string) error {
	ctx := context.Background()

	ws, err := loadWorkspace(global)
	if err != nil {
		return err
	}

	entries, err := selectEntries(ws, names)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		repo, err := ws.open(ctx, entry)
		if err != nil {
			return err
		}

		action, err := repo.Update(ctx)
		if err != nil {
			return fmt.Errorf("%s: update failed: %w", entry.Name, err)
		}
		cmd.Printf("%s: %s\n", entry.Name, action)

		if entry.Pin != "" {
			if err := pinRevision(ctx, repo, entry.Pin); err != nil {
				return fmt.Errorf("%s: %w", entry.Name, err)
			}
			cmd.Printf("%s: pinned to %s\n", entry.Name, shortID(entry.Pin))
		}
	}

	return nil
}

// selectEntries resolves the requested names, or every entry when none
// were given.
func selectEntries(ws *workspace, names []string) ([]*reposync.ManifestEntry, error) {
	if len(names) == 0 {
		entries := make([]*reposync.ManifestEntry, len(ws.manifest.Repos))
		for i := range ws.manifest.Repos {
			entries[i] = &ws.manifest.Repos[i]
		}
		return entries, nil
	}

	entries := make([]*reposync.ManifestEntry, 0, len(names))
	for _, name := range names {
		entry, err := ws.entryByName(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// pinRevision resets the working tree to the commit whose ID starts with
// the given prefix.
func pinRevision(ctx context.Context, repo *reposync.RepoSync, pin string) error {
	rec, err := findCommit(ctx, repo, pin)
	if err != nil {
		return err
	}
	return repo.UseRev(ctx, *rec)
}

// findCommit locates a locally fetched commit by unambiguous ID prefix.
func findCommit(ctx context.Context, repo *reposync.RepoSync, idPrefix string) (*reposync.CommitRecord, error) {
	commits, err := repo.ListCommits(ctx)
	if err != nil {
		return nil, err
	}

	var found *reposync.CommitRecord
	for i := range commits {
		if strings.HasPrefix(commits[i].ID, idPrefix) {
			if found != nil {
				return nil, fmt.Errorf("commit prefix %q is ambiguous", idPrefix)
			}
			found = &commits[i]
		}
	}

	if found == nil {
		return nil, fmt.Errorf("no local commit matches %q", idPrefix)
	}
	return found, nil
}
