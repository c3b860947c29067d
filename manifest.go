// Package reposync provides revision tracking for remote repositories.
// This file contains the manifest format describing tracked repositories.
package reposync

import (
	"fmt"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"gopkg.in/yaml.v3"
)

// ManifestEntry describes one tracked repository.
type ManifestEntry struct {
	// Name identifies the entry within the manifest.
	Name string `yaml:"name"`

	// URL is the remote origin to track.
	URL string `yaml:"url"`

	// Folder is the directory below the base directory holding the local
	// copy. Defaults to Name.
	Folder string `yaml:"folder,omitempty"`

	// Pin optionally holds a commit ID to reset to after each update,
	// keeping the working tree at a fixed historical revision.
	Pin string `yaml:"pin,omitempty"`
}

// Manifest lists the repositories an automation run keeps synchronized.
type Manifest struct {
	// BaseDir overrides the base directory for all entries when set.
	BaseDir string `yaml:"base_dir,omitempty"`

	// Repos are the tracked repositories.
	Repos []ManifestEntry `yaml:"repos"`
}

// LoadManifest reads and validates a YAML manifest from the given
// filesystem path.
func LoadManifest(fsys fs.Filesystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, WrapErrorf(err, "failed to read manifest %q", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, WrapErrorf(err, "failed to parse manifest %q", path)
	}

	seen := make(map[string]struct{}, len(m.Repos))
	for i := range m.Repos {
		entry := &m.Repos[i]

		if entry.Name == "" {
			return nil, fmt.Errorf("manifest entry %d: name is required", i)
		}
		if entry.URL == "" {
			return nil, fmt.Errorf("manifest entry %q: url is required", entry.Name)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("manifest entry %q: duplicate name", entry.Name)
		}
		seen[entry.Name] = struct{}{}

		if entry.Folder == "" {
			entry.Folder = entry.Name
		}
	}

	return &m, nil
}

// Entry returns the manifest entry with the given name, or nil.
func (m *Manifest) Entry(name string) *ManifestEntry {
	for i := range m.Repos {
		if m.Repos[i].Name == name {
			return &m.Repos[i]
		}
	}
	return nil
}
