// Package reposync tracks and synchronizes local copies of remote git
// repositories against their origin.
//
// The package targets automation scenarios such as keeping vendored
// dependencies current, not interactive development: working trees are
// reset hard, uncommitted changes are discarded, and every operation
// re-derives state from disk rather than trusting in-memory flags.
//
// # Basic Usage
//
// Bind a synchronizer to a remote URL and a folder below a base directory:
//
//	import (
//	    "context"
//
//	    fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
//	    "github.com/vendorsync/reposync"
//	)
//
//	ctx := context.Background()
//	repo, err := reposync.New(ctx, "https://example.com/dep.git", "dep", &reposync.Options{
//	    FS:      fsb.NewBaseOSFS(),
//	    BaseDir: reposync.DefaultBaseDir(),
//	})
//
//	// Clone on first run, pull afterwards. Safe to call regardless of
//	// the local copy's situation.
//	action, err := repo.Update(ctx)
//
// # Revision Queries
//
// Inspect local and remote state:
//
//	current, err := repo.CurrentRev(ctx)   // checked-out commit
//	last, err := repo.LastLocalRev(ctx)    // newest fetched commit
//	stale, err := repo.IsOutdated(ctx)     // network round-trip
//	commits, err := repo.ListCommits(ctx)  // ascending by timestamp
//
// # Historical Checkouts
//
// Reset the working tree to an earlier commit while keeping the ability to
// re-synchronize later:
//
//	commits, err := repo.ListCommits(ctx)
//	err = repo.UseRev(ctx, commits[0])     // oldest revision
//	_, err = repo.Update(ctx)              // back to the newest
//
// Records returned by RemoteRev cannot feed UseRev: their commit has not
// been fetched into local storage yet.
//
// # Error Handling
//
// Failures are sentinel errors checked with errors.Is: ErrNotCloned (no
// local copy is open), ErrAlreadyPresent (clone requested over an existing
// copy), ErrRemoteUnavailable (the network round-trip failed),
// ErrInconsistentState (directory present but unopenable), and
// ErrResetFailed (hard reset failed, cause preserved).
//
// # Concurrency
//
// An instance owns one working tree and must be confined to a single
// goroutine; concurrent Pull and UseRev would race on the same files.
// Cross-process locking on the local path is the caller's responsibility.
package reposync
