// Package reposync provides revision tracking for remote repositories.
// This file contains the default go-git backed engine.
package reposync

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/vendorsync/reposync/internal/gitstore"
)

// gitEngine implements Engine on top of go-git, storing all repository
// state through the configured filesystem abstraction.
type gitEngine struct {
	fs        fs.Filesystem
	cacheSize int
	auth      AuthProvider
}

// storageAt scopes the engine's filesystem to path and builds git object
// storage in its .git subdirectory, returning the storage together with the
// worktree filesystem.
func (e *gitEngine) storageAt(path string) (*filesystem.Storage, billy.Filesystem, error) {
	billyFS, err := gitstore.Billy(e.fs)
	if err != nil {
		return nil, nil, fmt.Errorf("filesystem conversion failed: %w", err)
	}

	scopedFS, err := billyFS.Chroot(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to chroot to %q: %w", path, err)
	}

	dotGitFS, err := scopedFS.Chroot(metadataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access %s directory: %w", metadataDir, err)
	}

	return gitstore.NewStorage(dotGitFS, e.cacheSize), scopedFS, nil
}

// Open opens an existing local copy at path.
func (e *gitEngine) Open(ctx context.Context, path string) (Handle, error) {
	storage, worktreeFS, err := e.storageAt(path)
	if err != nil {
		return nil, err
	}

	repo, err := git.Open(storage, worktreeFS)
	if err != nil {
		return nil, WrapError(err, "failed to open repository")
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &gitHandle{repo: repo, worktree: worktree, auth: e.auth}, nil
}

// Clone creates a local copy at path from the remote at url.
// Any failure to obtain the copy is reported as ErrRemoteUnavailable with
// the underlying cause preserved: the caller only needs to distinguish
// "could not fetch" from "already present", not individual transport faults.
func (e *gitEngine) Clone(ctx context.Context, url, path string) (Handle, error) {
	if url == "" {
		return nil, WrapError(ErrInvalidRef, "remote URL cannot be empty")
	}

	storage, worktreeFS, err := e.storageAt(path)
	if err != nil {
		return nil, err
	}

	cloneOpts := &git.CloneOptions{URL: url}

	if e.auth != nil {
		authMethod, authErr := e.auth.Method(url)
		if authErr != nil {
			return nil, WrapError(authErr, "failed to get authentication method")
		}
		cloneOpts.Auth = authMethod
	}

	repo, err := git.Clone(storage, worktreeFS, cloneOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %q: %w: %w", url, ErrRemoteUnavailable, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, WrapError(err, "failed to get worktree")
	}

	return &gitHandle{repo: repo, worktree: worktree, auth: e.auth}, nil
}

// gitHandle implements Handle over an open go-git repository.
type gitHandle struct {
	repo     *git.Repository
	worktree *git.Worktree
	auth     AuthProvider
}

// RemoteURL returns the URL configured for the origin remote.
func (h *gitHandle) RemoteURL() (string, error) {
	remote, err := h.repo.Remote(DefaultRemoteName)
	if err != nil {
		return "", WrapError(err, "failed to get remote configuration")
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", WrapError(ErrInvalidRef, "origin remote has no URL configured")
	}

	return urls[0], nil
}

// authMethod resolves the auth method for the origin remote, if a provider
// is configured.
func (h *gitHandle) authMethod() (transport.AuthMethod, error) {
	if h.auth == nil {
		return nil, nil
	}

	url, err := h.RemoteURL()
	if err != nil {
		return nil, err
	}

	return h.auth.Method(url)
}

// Pull fetches the origin's default branch and merges it into the current
// branch. Returns ErrAlreadyUpToDate when nothing changed.
func (h *gitHandle) Pull(ctx context.Context) error {
	pullOpts := &git.PullOptions{RemoteName: DefaultRemoteName}

	authMethod, err := h.authMethod()
	if err != nil {
		return WrapError(err, "failed to get authentication method")
	}
	pullOpts.Auth = authMethod

	err = h.worktree.Pull(pullOpts)
	if err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			return ErrAlreadyUpToDate
		}
		if errors.Is(err, transport.ErrRepositoryNotFound) || errors.Is(err, transport.ErrAuthenticationRequired) {
			return fmt.Errorf("failed to pull: %w: %w", ErrRemoteUnavailable, err)
		}
		return WrapError(err, "failed to pull from remote")
	}

	return nil
}

// FetchTip fetches from origin without merging and returns the tip commit
// of the tracked branch. The returned record is not resettable.
func (h *gitHandle) FetchTip(ctx context.Context) (*CommitRecord, error) {
	head, err := h.repo.Head()
	if err != nil {
		return nil, WrapError(err, "failed to get HEAD reference")
	}

	fetchOpts := &git.FetchOptions{RemoteName: DefaultRemoteName}

	authMethod, err := h.authMethod()
	if err != nil {
		return nil, WrapError(err, "failed to get authentication method")
	}
	fetchOpts.Auth = authMethod

	err = h.repo.Fetch(fetchOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil, fmt.Errorf("failed to fetch: %w: %w", ErrRemoteUnavailable, err)
	}

	branch := head.Name().Short()
	remoteRef, err := h.repo.Reference(plumbing.NewRemoteReferenceName(DefaultRemoteName, branch), true)
	if err != nil {
		return nil, WrapErrorf(err, "failed to resolve fetched tip of %q", branch)
	}

	commit, err := h.repo.CommitObject(remoteRef.Hash())
	if err != nil {
		return nil, WrapError(err, "failed to load fetched tip commit")
	}

	record := newRecord(commit, false)
	return &record, nil
}

// Head returns the commit currently checked out in the working tree.
func (h *gitHandle) Head() (*CommitRecord, error) {
	head, err := h.repo.Head()
	if err != nil {
		return nil, WrapError(err, "failed to get HEAD reference")
	}

	commit, err := h.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, WrapError(err, "failed to load HEAD commit")
	}

	record := newRecord(commit, true)
	return &record, nil
}

// Commits enumerates every commit reachable from any local reference.
// Walking all references rather than HEAD keeps commits visible after the
// working tree has been reset to an older revision.
func (h *gitHandle) Commits() ([]CommitRecord, error) {
	branches, err := h.repo.Branches()
	if err != nil {
		return nil, WrapError(err, "failed to list branches")
	}

	branchCount := 0
	err = branches.ForEach(func(*plumbing.Reference) error {
		branchCount++
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate branches")
	}

	// Freshly initialized, never committed: a valid copy with no history.
	if branchCount == 0 {
		return []CommitRecord{}, nil
	}

	iter, err := h.repo.Log(&git.LogOptions{All: true})
	if err != nil {
		return nil, WrapError(err, "failed to create commit iterator")
	}
	defer iter.Close()

	var records []CommitRecord
	err = iter.ForEach(func(commit *object.Commit) error {
		records = append(records, newRecord(commit, true))
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate commits")
	}

	return records, nil
}

// ResetHard resets the index and working tree to ref.
func (h *gitHandle) ResetHard(ref RevRef) error {
	resetOpts := &git.ResetOptions{
		Commit: ref.hash,
		Mode:   git.HardReset,
	}

	err := h.worktree.Reset(resetOpts)
	if err != nil {
		return fmt.Errorf("failed to reset to %s: %w: %w", ref.hash, ErrResetFailed, err)
	}

	return nil
}

// newRecord converts a go-git commit into a CommitRecord. The committed
// time (not the authored time) is what all ordering and staleness
// comparisons use.
func newRecord(commit *object.Commit, resettable bool) CommitRecord {
	record := CommitRecord{
		ID:        commit.Hash.String(),
		Timestamp: commit.Committer.When.Unix(),
		Message:   commit.Message,
	}

	if resettable {
		record.ref = &RevRef{hash: commit.Hash}
	}

	return record
}
