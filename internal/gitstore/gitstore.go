// Package gitstore adapts the project's filesystem abstraction to the
// storage layer expected by go-git.
package gitstore

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	fsb "github.com/input-output-hk/catalyst-forge-libs/fs/billy"
)

// Billy unwraps an fs.Filesystem to the billy.Filesystem go-git operates on.
// The filesystem must be a billy-backed FS from the fs/billy package.
//
//nolint:ireturn // billy.Filesystem is the interface go-git consumes
func Billy(fsys fs.Filesystem) (billy.Filesystem, error) {
	wrapped, ok := fsys.(*fsb.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem must be a billy-backed FS from fs/billy, got %T", fsys)
	}

	return wrapped.Raw(), nil
}

// NewStorage creates git object storage over the given filesystem with an
// LRU object cache of the given size. A non-positive size falls back to a
// minimal cache rather than disabling caching.
func NewStorage(billyFS billy.Filesystem, cacheSize int) *filesystem.Storage {
	if cacheSize <= 0 {
		cacheSize = 100
	}

	objCache := cache.NewObjectLRU(cache.FileSize(cacheSize))
	return filesystem.NewStorage(billyFS, objCache)
}
