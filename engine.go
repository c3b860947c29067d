// Package reposync provides revision tracking for remote repositories.
// This file declares the capability surface required from the underlying
// version-control engine.
package reposync

import "context"

// Engine is the contract the synchronizer needs from a version-control
// implementation. The default engine is backed by go-git; tests may supply
// their own via Options.Engine.
type Engine interface {
	// Open opens an existing local copy at path.
	// Returns an error if path is not a usable repository.
	Open(ctx context.Context, path string) (Handle, error)

	// Clone creates a local copy at path from the remote at url and returns
	// a handle to it. Failures to reach the remote wrap ErrRemoteUnavailable.
	Clone(ctx context.Context, url, path string) (Handle, error)
}

// Handle is an open connection to one local copy. A handle is exclusively
// owned by the RepoSync instance that opened it.
type Handle interface {
	// RemoteURL returns the URL configured for the origin remote.
	RemoteURL() (string, error)

	// Pull fetches the origin's default branch and merges it into the
	// current branch. Returns ErrAlreadyUpToDate when nothing changed.
	Pull(ctx context.Context) error

	// FetchTip fetches from origin without merging and returns the tip
	// commit of the tracked branch. The returned record is not resettable.
	// Failures to reach the remote wrap ErrRemoteUnavailable.
	FetchTip(ctx context.Context) (*CommitRecord, error)

	// Head returns the commit currently checked out in the working tree.
	Head() (*CommitRecord, error)

	// Commits enumerates every commit reachable from any local reference,
	// in no particular order. A present but branch-less copy yields an
	// empty slice and no error.
	Commits() ([]CommitRecord, error)

	// ResetHard resets the index and working tree to ref, discarding
	// uncommitted modifications.
	ResetHard(ref RevRef) error
}
