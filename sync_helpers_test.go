package reposync

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/require"
)

// fakeCommit builds a resettable record with a deterministic hex ID derived
// from n.
func fakeCommit(n int, ts int64, msg string) CommitRecord {
	id := fmt.Sprintf("%040x", n)
	return CommitRecord{
		ID:        id,
		Timestamp: ts,
		Message:   msg,
		ref:       &RevRef{hash: plumbing.NewHash(id)},
	}
}

// fakeHandle implements Handle with scripted state.
type fakeHandle struct {
	url       string
	commits   []CommitRecord
	headID    string
	remoteTip *CommitRecord
	pending   []CommitRecord // applied by the next successful Pull
	pullErr   error
	fetchErr  error
	resetErr  error
	fetches   int
	pulls     int
	resets    []RevRef
}

func (h *fakeHandle) RemoteURL() (string, error) {
	return h.url, nil
}

func (h *fakeHandle) Pull(ctx context.Context) error {
	h.pulls++
	if h.pullErr != nil {
		return h.pullErr
	}
	if len(h.pending) == 0 {
		return ErrAlreadyUpToDate
	}
	h.commits = append(h.commits, h.pending...)
	h.headID = h.pending[len(h.pending)-1].ID
	h.pending = nil
	return nil
}

func (h *fakeHandle) FetchTip(ctx context.Context) (*CommitRecord, error) {
	h.fetches++
	if h.fetchErr != nil {
		return nil, h.fetchErr
	}
	if h.remoteTip == nil {
		return nil, fmt.Errorf("fetch: %w", ErrRemoteUnavailable)
	}
	// What a fetch hands back is never resettable.
	tip := CommitRecord{ID: h.remoteTip.ID, Timestamp: h.remoteTip.Timestamp, Message: h.remoteTip.Message}
	return &tip, nil
}

func (h *fakeHandle) Head() (*CommitRecord, error) {
	for i := range h.commits {
		if h.commits[i].ID == h.headID {
			head := h.commits[i]
			return &head, nil
		}
	}
	return nil, fmt.Errorf("head %q not in history", h.headID)
}

func (h *fakeHandle) Commits() ([]CommitRecord, error) {
	out := make([]CommitRecord, len(h.commits))
	copy(out, h.commits)
	return out, nil
}

func (h *fakeHandle) ResetHard(ref RevRef) error {
	if h.resetErr != nil {
		return fmt.Errorf("reset: %w: %w", ErrResetFailed, h.resetErr)
	}
	h.resets = append(h.resets, ref)
	for i := range h.commits {
		if h.commits[i].ref != nil && h.commits[i].ref.hash == ref.hash {
			h.headID = h.commits[i].ID
			return nil
		}
	}
	return fmt.Errorf("reset to unknown ref: %w", ErrResetFailed)
}

// fakeEngine implements Engine with scripted handles. Clone creates the
// metadata marker on the filesystem so Exists observes the new copy.
type fakeEngine struct {
	fs          fs.Filesystem
	openHandle  *fakeHandle
	openErr     error
	cloneHandle *fakeHandle
	cloneErr    error
	opens       int
	clones      int
}

func (e *fakeEngine) Open(ctx context.Context, path string) (Handle, error) {
	e.opens++
	if e.openErr != nil {
		return nil, e.openErr
	}
	return e.openHandle, nil
}

func (e *fakeEngine) Clone(ctx context.Context, url, path string) (Handle, error) {
	e.clones++
	if e.cloneErr != nil {
		return nil, e.cloneErr
	}
	if err := e.fs.MkdirAll(filepath.Join(path, metadataDir), 0o755); err != nil {
		return nil, err
	}
	return e.cloneHandle, nil
}

// syncFixture bundles a synchronizer with its fake engine and filesystem.
type syncFixture struct {
	repo   *RepoSync
	engine *fakeEngine
	fs     fs.Filesystem
	ctx    context.Context
}

// threeCommitHandle is the canonical fixture: commits at timestamps
// 100/200/300 with the working tree and remote tip at 300. The engine
// hands commits over newest first, as real iteration typically does.
func threeCommitHandle() *fakeHandle {
	c1 := fakeCommit(1, 100, "first")
	c2 := fakeCommit(2, 200, "second")
	c3 := fakeCommit(3, 300, "third")
	tip := c3
	return &fakeHandle{
		url:       "https://example.com/dep.git",
		commits:   []CommitRecord{c3, c2, c1},
		headID:    c3.ID,
		remoteTip: &tip,
	}
}

// newFixture constructs a synchronizer with no local copy on disk.
func newFixture(t *testing.T, engine *fakeEngine) *syncFixture {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()
	engine.fs = memFS

	repo, err := New(ctx, "https://example.com/dep.git", "dep", &Options{
		FS:      memFS,
		BaseDir: "repos",
		Engine:  engine,
	})
	require.NoError(t, err, "failed to construct synchronizer")

	return &syncFixture{repo: repo, engine: engine, fs: memFS, ctx: ctx}
}

// newClonedFixture constructs a synchronizer over a pre-existing local copy
// so construction opens the handle.
func newClonedFixture(t *testing.T, handle *fakeHandle) *syncFixture {
	t.Helper()

	ctx := context.Background()
	memFS := fsb.NewInMemoryFS()
	markerPath := filepath.Join("repos", "dep", metadataDir)
	require.NoError(t, memFS.MkdirAll(markerPath, 0o755), "failed to create metadata marker")

	engine := &fakeEngine{fs: memFS, openHandle: handle}

	repo, err := New(ctx, "https://example.com/ignored.git", "dep", &Options{
		FS:      memFS,
		BaseDir: "repos",
		Engine:  engine,
	})
	require.NoError(t, err, "failed to construct synchronizer")

	return &syncFixture{repo: repo, engine: engine, fs: memFS, ctx: ctx}
}
