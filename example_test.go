package reposync_test

import (
	"context"
	"errors"
	"fmt"

	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/vendorsync/reposync"
)

// Example demonstrates the basic synchronization loop: clone on first run,
// pull afterwards, then inspect the local revision state.
func Example() {
	ctx := context.Background()

	repo, err := reposync.New(ctx, "https://example.com/dep.git", "dep", &reposync.Options{
		FS:      fsb.NewBaseOSFS(),
		BaseDir: reposync.DefaultBaseDir(),
	})
	if err != nil {
		fmt.Println("construction failed:", err)
		return
	}

	action, err := repo.Update(ctx)
	if err != nil {
		fmt.Println("update failed:", err)
		return
	}
	fmt.Println("update:", action)

	current, err := repo.CurrentRev(ctx)
	if err != nil {
		fmt.Println("query failed:", err)
		return
	}
	fmt.Println("checked out:", current.ID)
}

// ExampleRepoSync_UseRev demonstrates checking out a historical revision
// and returning to the newest one.
func ExampleRepoSync_UseRev() {
	ctx := context.Background()

	repo, err := reposync.New(ctx, "https://example.com/dep.git", "dep", &reposync.Options{
		FS:      fsb.NewBaseOSFS(),
		BaseDir: reposync.DefaultBaseDir(),
	})
	if err != nil {
		return
	}

	commits, err := repo.ListCommits(ctx)
	if err != nil || len(commits) == 0 {
		return
	}

	// Reset the working tree to the oldest fetched revision.
	if err := repo.UseRev(ctx, commits[0]); err != nil {
		return
	}

	// Update later brings the copy back in sync with the remote.
	if _, err := repo.Update(ctx); err != nil && !errors.Is(err, reposync.ErrRemoteUnavailable) {
		return
	}
}
