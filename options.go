// Package reposync provides revision tracking for remote repositories.
// This file contains configuration for constructing synchronizer instances.
package reposync

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

const (
	// DefaultStorerCacheSize is the default size for the LRU object cache
	// used by the go-git backed engine.
	DefaultStorerCacheSize = 1000

	// DefaultRemoteName is the remote every instance tracks.
	DefaultRemoteName = "origin"

	// metadataDir is the engine's metadata marker. Its presence under a
	// local path is the sole signal that a local copy exists there.
	metadataDir = ".git"
)

// AuthProvider resolves authentication methods for network operations.
// Implementations should handle different URL schemes and credential sources.
type AuthProvider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication cannot be resolved for the URL.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// Options configures synchronizer construction.
//
// BaseDir replaces the mutable process-wide base-directory setting of older
// designs: it is captured explicitly per instance at construction time, so
// constructing instances with different base paths carries no ordering
// hazard.
type Options struct {
	// FS is the REQUIRED native filesystem root (OS or in-memory).
	// All local copies live within this filesystem.
	FS fs.Filesystem

	// BaseDir is the directory within FS under which each instance's
	// per-repository folder is placed. Defaults to ".".
	BaseDir string

	// StorerCacheSize sets the LRU object cache entries for the default
	// engine. Defaults to DefaultStorerCacheSize.
	StorerCacheSize int

	// Auth is an optional provider that resolves per-URL AuthMethod.
	// If nil, no authentication will be available.
	Auth AuthProvider

	// Engine overrides the version-control engine. If nil, a go-git backed
	// engine operating on FS is used.
	Engine Engine
}

// Validate checks that the Options are properly configured.
// It returns an error if required fields are missing or invalid.
func (o *Options) Validate() error {
	if o.FS == nil {
		return WrapError(ErrInvalidRef, "FS is required")
	}

	if o.StorerCacheSize < 0 {
		return WrapError(ErrInvalidRef, "StorerCacheSize cannot be negative")
	}

	return nil
}

// applyDefaults sets default values for any unset fields in Options.
func (o *Options) applyDefaults() {
	if o.BaseDir == "" {
		o.BaseDir = "."
	}

	if o.StorerCacheSize == 0 {
		o.StorerCacheSize = DefaultStorerCacheSize
	}

	if o.Engine == nil {
		o.Engine = &gitEngine{
			fs:        o.FS,
			cacheSize: o.StorerCacheSize,
			auth:      o.Auth,
		}
	}
}

// DefaultBaseDir returns the conventional per-user location for local
// copies, following the XDG base directory specification. Intended for
// callers whose FS is rooted at the OS filesystem root.
func DefaultBaseDir() string {
	return filepath.Join(xdg.DataHome, "reposync")
}
