package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/vendorsync/reposync"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	manifest string
	baseDir  string
}

// workspace bundles the loaded manifest with the filesystem and base
// directory all repository instances operate on.
type workspace struct {
	manifest *reposync.Manifest
	fs       fs.Filesystem
	baseDir  string
}

// loadWorkspace reads the manifest and resolves the base directory.
// A base_dir set in the manifest takes precedence over the flag.
func loadWorkspace(opts *globalOptions) (*workspace, error) {
	fsys := fsb.NewBaseOSFS()

	manifestPath, err := filepath.Abs(opts.manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	manifest, err := reposync.LoadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	baseDir := opts.baseDir
	if manifest.BaseDir != "" {
		baseDir = manifest.BaseDir
	}
	baseDir, err = filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	return &workspace{manifest: manifest, fs: fsys, baseDir: baseDir}, nil
}

// open binds a synchronizer to one manifest entry.
func (w *workspace) open(ctx context.Context, entry *reposync.ManifestEntry) (*reposync.RepoSync, error) {
	repo, err := reposync.New(ctx, entry.URL, entry.Folder, &reposync.Options{
		FS:      w.fs,
		BaseDir: w.baseDir,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Name, err)
	}
	return repo, nil
}

// entryByName resolves a repository argument against the manifest.
func (w *workspace) entryByName(name string) (*reposync.ManifestEntry, error) {
	entry := w.manifest.Entry(name)
	if entry == nil {
		return nil, fmt.Errorf("repository %q is not in the manifest", name)
	}
	return entry, nil
}
