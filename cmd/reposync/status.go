package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vendorsync/reposync"
)

type statusOptions struct {
	remote bool
}

func newStatusCmd(global *globalOptions) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the revision state of each tracked repository",
		Example: `  reposync status
  reposync status --remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, global, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Also fetch from each origin to check for newer revisions")

	return cmd
}

func runStatus(cmd *cobra.Command, global *globalOptions, opts *statusOptions) error {
	ctx := context.Background()

	ws, err := loadWorkspace(global)
	if err != nil {
		return err
	}

	for i := range ws.manifest.Repos {
		entry := &ws.manifest.Repos[i]

		repo, err := ws.open(ctx, entry)
		if err != nil {
			return err
		}

		if !repo.Exists() {
			cmd.Printf("%s: not cloned\n", entry.Name)
			continue
		}

		line, err := statusLine(ctx, repo, opts.remote)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
		cmd.Printf("%s: %s\n", entry.Name, line)
	}

	return nil
}

func statusLine(ctx context.Context, repo *reposync.RepoSync, checkRemote bool) (string, error) {
	current, err := repo.CurrentRev(ctx)
	if err != nil {
		if errors.Is(err, reposync.ErrNotCloned) {
			return "present but unopenable (corrupt or permission problem)", nil
		}
		return "", err
	}

	line := fmt.Sprintf("at %s (%s)", shortID(current.ID), formatTime(current.Timestamp))

	atTip, err := repo.IsLastLocal(ctx)
	if err != nil {
		return "", err
	}
	if !atTip {
		last, err := repo.LastLocalRev(ctx)
		if err != nil {
			return "", err
		}
		line += fmt.Sprintf(", pinned behind local tip %s", shortID(last.ID))
	}

	if checkRemote {
		outdated, err := repo.IsOutdated(ctx)
		if err != nil {
			return "", err
		}
		if outdated {
			line += ", remote has newer commits"
		} else {
			line += ", up to date with remote"
		}
	}

	return line, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
