// Package reposync provides revision tracking for remote repositories.
// This file contains the synchronizer bound to one remote/local pair.
package reposync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// SyncAction reports which state transition an Update performed.
type SyncAction int8

const (
	// ActionNone indicates the update did not complete.
	ActionNone SyncAction = iota

	// ActionCloned indicates no local copy existed and one was cloned.
	ActionCloned

	// ActionPulled indicates the local copy existed and new commits were
	// merged from the remote.
	ActionPulled

	// ActionUpToDate indicates the local copy existed and the remote had
	// nothing new.
	ActionUpToDate
)

// String returns a human-readable string representation of the SyncAction.
func (a SyncAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCloned:
		return "cloned"
	case ActionPulled:
		return "pulled"
	case ActionUpToDate:
		return "up-to-date"
	default:
		return "unknown"
	}
}

// RepoSync tracks one local copy of a remote repository and keeps it
// synchronized with its origin. Create one instance per repository.
//
// Every operation re-derives existence and handle state from the filesystem
// and the engine rather than trusting cached flags, so changes made outside
// this instance (another process deleting or updating the copy) are observed
// on the next call. An instance owns exactly one working tree and is not
// safe for concurrent use from multiple goroutines.
type RepoSync struct {
	remoteURL string
	folder    string
	localPath string
	fs        fs.Filesystem
	engine    Engine
	handle    Handle
}

// New creates a synchronizer bound to remoteURL and a folder below the
// configured base directory. If a local copy already exists there, a handle
// is opened on it and the remote URL recorded in its origin configuration
// takes precedence over the remoteURL argument (local truth wins). Failure
// to open an existing copy is not fatal here: the handle stays absent and
// Update reports the inconsistency. No network access occurs.
func New(ctx context.Context, remoteURL, folder string, opts *Options) (*RepoSync, error) {
	if folder == "" {
		return nil, WrapError(ErrInvalidRef, "folder cannot be empty")
	}

	if opts == nil {
		return nil, WrapError(ErrInvalidRef, "options are required")
	}

	if err := opts.Validate(); err != nil {
		return nil, WrapError(err, "invalid options")
	}

	opts.applyDefaults()

	r := &RepoSync{
		remoteURL: remoteURL,
		folder:    folder,
		localPath: filepath.Join(opts.BaseDir, folder),
		fs:        opts.FS,
		engine:    opts.Engine,
	}

	if r.Exists() {
		handle, err := r.engine.Open(ctx, r.localPath)
		if err == nil {
			r.handle = handle
			if url, urlErr := handle.RemoteURL(); urlErr == nil {
				r.remoteURL = url
			}
		}
	}

	return r, nil
}

// RemoteURL returns the origin URL this instance tracks.
func (r *RepoSync) RemoteURL() string { return r.remoteURL }

// Folder returns the per-instance folder name below the base directory.
func (r *RepoSync) Folder() string { return r.folder }

// LocalPath returns the full path of the local copy. It may not exist yet.
func (r *RepoSync) LocalPath() string { return r.localPath }

// Exists reports whether the local path holds some revision of the remote
// repository, determined solely by the presence of the engine's metadata
// marker. It never consults the handle and is safe to call repeatedly.
func (r *RepoSync) Exists() bool {
	present, err := r.fs.Exists(filepath.Join(r.localPath, metadataDir))
	if err != nil {
		return false
	}
	return present
}

// Clone clones the remote repository into the local path. Used internally
// by Update; prefer calling Update.
//
// Returns ErrAlreadyPresent when a handle or local copy already exists (an
// expected no-op, not a failure). Clone failures wrap ErrRemoteUnavailable
// and leave the handle absent.
func (r *RepoSync) Clone(ctx context.Context) error {
	if r.handle != nil {
		return ErrAlreadyPresent
	}
	if r.Exists() {
		return ErrAlreadyPresent
	}

	handle, err := r.engine.Clone(ctx, r.remoteURL, r.localPath)
	if err != nil {
		return err
	}

	r.handle = handle
	return nil
}

// Pull fetches and merges the origin's default branch into the current
// branch. Used internally by Update; prefer calling Update.
//
// Returns ErrNotCloned when no handle is open, or when the local directory
// has been deleted externally since construction. Returns ErrAlreadyUpToDate
// when the remote had nothing new; other engine failures propagate.
func (r *RepoSync) Pull(ctx context.Context) error {
	if r.handle == nil {
		return ErrNotCloned
	}
	if !r.Exists() {
		return ErrNotCloned
	}

	return r.handle.Pull(ctx)
}

// Update clones or pulls so the local copy matches the most recent remote
// revision. It is the synchronization entry point and is safe to call
// regardless of the local copy's situation: no copy is cloned, a present
// copy is pulled.
//
// A directory that exists without an open handle is a fatal inconsistency
// (corruption or permission problem found at construction) and returns
// ErrInconsistentState. Update never re-clones over existing files.
func (r *RepoSync) Update(ctx context.Context) (SyncAction, error) {
	if !r.Exists() {
		if err := r.Clone(ctx); err != nil {
			return ActionNone, err
		}
		return ActionCloned, nil
	}

	if r.handle == nil {
		return ActionNone, fmt.Errorf("%q: %w", r.localPath, ErrInconsistentState)
	}

	err := r.Pull(ctx)
	switch {
	case err == nil:
		return ActionPulled, nil
	case errors.Is(err, ErrAlreadyUpToDate):
		return ActionUpToDate, nil
	default:
		return ActionNone, err
	}
}

// CurrentRev returns the commit currently checked out in the working tree.
// Returns ErrNotCloned when no handle is open. No network access.
func (r *RepoSync) CurrentRev(ctx context.Context) (*CommitRecord, error) {
	if r.handle == nil {
		return nil, ErrNotCloned
	}

	return r.handle.Head()
}

// RemoteRev fetches from origin without merging and returns the tip commit
// of the tracked branch. This is a network round-trip on every call.
//
// The returned record is not resettable: its commit has not been fetched
// into local storage, so it cannot feed UseRev. Callers wanting to check
// out that revision must Update first. Returns ErrNotCloned when no handle
// is open and wraps ErrRemoteUnavailable on fetch failure.
func (r *RepoSync) RemoteRev(ctx context.Context) (*CommitRecord, error) {
	if r.handle == nil {
		return nil, ErrNotCloned
	}

	return r.handle.FetchTip(ctx)
}

// LastLocalRev returns the most recent commit present in local history,
// independent of which commit is currently checked out. The two differ
// after UseRev has moved the working tree to an older revision.
//
// Returns ErrNotCloned when no handle is open and ErrEmptyHistory when the
// copy has no commits.
func (r *RepoSync) LastLocalRev(ctx context.Context) (*CommitRecord, error) {
	commits, err := r.ListCommits(ctx)
	if err != nil {
		return nil, err
	}

	if len(commits) == 0 {
		return nil, ErrEmptyHistory
	}

	last := commits[len(commits)-1]
	return &last, nil
}

// CountLocalRevs returns the number of commits the local copy has already
// fetched. A present but branch-less copy (freshly initialized, never
// committed) counts 0; ErrNotCloned is returned when no handle is open.
// The count does not shrink when the working tree is reset to an older
// revision, and it is unaware of commits not yet fetched from the remote.
func (r *RepoSync) CountLocalRevs(ctx context.Context) (int, error) {
	if r.handle == nil {
		return 0, ErrNotCloned
	}

	commits, err := r.handle.Commits()
	if err != nil {
		return 0, err
	}

	return len(commits), nil
}

// IsOutdated reports whether the remote has a commit newer than the one
// currently checked out, comparing committed timestamps. It performs a
// network fetch on every call; it is not a cheap predicate.
//
// Note that after UseRev to an older revision this reports true even when
// the remote has nothing the local copy has not fetched, because the
// comparison is against the checked-out commit.
func (r *RepoSync) IsOutdated(ctx context.Context) (bool, error) {
	if r.handle == nil {
		return false, ErrNotCloned
	}

	current, err := r.CurrentRev(ctx)
	if err != nil {
		return false, err
	}

	remote, err := r.RemoteRev(ctx)
	if err != nil {
		return false, err
	}

	return remote.Timestamp > current.Timestamp, nil
}

// IsLastLocal reports whether the working tree sits at the most recently
// fetched revision, i.e. no reset has moved it backward. Purely local,
// no network access. Returns ErrNotCloned when no handle is open.
func (r *RepoSync) IsLastLocal(ctx context.Context) (bool, error) {
	if r.handle == nil {
		return false, ErrNotCloned
	}

	current, err := r.CurrentRev(ctx)
	if err != nil {
		return false, err
	}

	last, err := r.LastLocalRev(ctx)
	if err != nil {
		return false, err
	}

	return last.ID == current.ID, nil
}

// ListCommits returns every commit available locally in ascending
// committed-time order, oldest first. Records are produced fresh on each
// call since the commit set grows after a successful Update. The listing
// is unaware of changes in the remote repository.
func (r *RepoSync) ListCommits(ctx context.Context) ([]CommitRecord, error) {
	if r.handle == nil {
		return nil, ErrNotCloned
	}

	commits, err := r.handle.Commits()
	if err != nil {
		return nil, err
	}

	sortByTimestamp(commits)
	return commits, nil
}

// CommitsByTimestamp returns the locally available commits keyed by their
// committed timestamp. When two commits share a timestamp the later-listed
// one wins; last-write-wins on collisions is the accepted policy of this
// associative form, and callers needing every commit should use ListCommits.
func (r *RepoSync) CommitsByTimestamp(ctx context.Context) (map[int64]CommitRecord, error) {
	commits, err := r.ListCommits(ctx)
	if err != nil {
		return nil, err
	}

	byTime := make(map[int64]CommitRecord, len(commits))
	for _, commit := range commits {
		byTime[commit.Timestamp] = commit
	}

	return byTime, nil
}

// UseRev resets the index and working tree to the given commit, discarding
// uncommitted local modifications (hard reset; this library targets
// automation, not interactive development).
//
// The record must come from CurrentRev, LastLocalRev, or ListCommits of
// this same instance. Records from RemoteRev are rejected with
// ErrInvalidRef since their commit has not been fetched yet; Update first.
// To move to a revision newer than the last local one, Update and then
// UseRev back to the desired commit. Reset failures wrap ErrResetFailed
// with the underlying cause preserved.
func (r *RepoSync) UseRev(ctx context.Context, rec CommitRecord) error {
	if r.handle == nil {
		return ErrNotCloned
	}

	if !rec.Resettable() {
		return WrapError(ErrInvalidRef, "commit has no locally fetched reference")
	}

	return r.handle.ResetHard(*rec.ref)
}
