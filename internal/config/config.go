// Package config loads the per-workspace settings file for dirdocs.
//
// Settings live in a single JSON file at the workspace root and are read
// once at startup. A missing file means defaults; a corrupt file is an
// error (silently running with defaults would mask a typo).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// SettingsFile is the name of the settings file at the workspace root.
const SettingsFile = ".dirdocs.json"

// DefaultFilenames are the documentation filenames recognized out of the
// box, in priority order: within one directory the first existing name
// wins.
var DefaultFilenames = []string{"AGENTS.md", "CLAUDE.md", "CONTEXT.md"}

// Settings holds the effective dirdocs configuration. Immutable after Load.
type Settings struct {
	// Enabled turns automatic injection on the read hook on or off.
	// The manual tool works regardless.
	Enabled bool `json:"enabled"`

	// MaxContextSize caps each injected fragment, in bytes of UTF-8 text.
	MaxContextSize int `json:"max_context_size"`

	// Filenames is the candidate list tested per directory. User-supplied
	// names are merged in front of DefaultFilenames, deduplicated.
	Filenames []string `json:"filenames"`

	// ExcludeRoot skips the workspace root directory during automatic
	// injection, for workspaces whose root docs the client already loads.
	ExcludeRoot bool `json:"exclude_root"`

	// SessionCapacity bounds the number of concurrently tracked sessions.
	SessionCapacity int `json:"session_capacity"`
}

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		Enabled:         true,
		MaxContextSize:  10000,
		Filenames:       slices.Clone(DefaultFilenames),
		ExcludeRoot:     false,
		SessionCapacity: 100,
	}
}

// SettingsPath returns the settings file path for a workspace root.
func SettingsPath(root string) string {
	return filepath.Join(root, SettingsFile)
}

// Exists reports whether a settings file is present at the workspace root.
func Exists(root string) bool {
	_, err := os.Stat(SettingsPath(root))
	return err == nil
}

// Load reads the settings file at the workspace root, merging it over
// Default(). A missing file yields Default() with no error.
func Load(root string) (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", SettingsFile, err)
	}

	// Decode over a zero file struct so we can tell "absent" from
	// "explicitly false/zero".
	var file struct {
		Enabled         *bool    `json:"enabled"`
		MaxContextSize  *int     `json:"max_context_size"`
		Filenames       []string `json:"filenames"`
		ExcludeRoot     *bool    `json:"exclude_root"`
		SessionCapacity *int     `json:"session_capacity"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", SettingsFile, err)
	}

	if file.Enabled != nil {
		cfg.Enabled = *file.Enabled
	}
	if file.MaxContextSize != nil {
		if *file.MaxContextSize <= 0 {
			return cfg, fmt.Errorf("parsing %s: max_context_size must be positive, got %d", SettingsFile, *file.MaxContextSize)
		}
		cfg.MaxContextSize = *file.MaxContextSize
	}
	if file.ExcludeRoot != nil {
		cfg.ExcludeRoot = *file.ExcludeRoot
	}
	if file.SessionCapacity != nil {
		if *file.SessionCapacity <= 0 {
			return cfg, fmt.Errorf("parsing %s: session_capacity must be positive, got %d", SettingsFile, *file.SessionCapacity)
		}
		cfg.SessionCapacity = *file.SessionCapacity
	}
	cfg.Filenames = mergeFilenames(file.Filenames, DefaultFilenames)

	return cfg, nil
}

// mergeFilenames prepends user names to the defaults, dropping duplicates
// while preserving order. User names come first so a configured name wins
// the first-match rule within a directory.
func mergeFilenames(user, defaults []string) []string {
	merged := make([]string, 0, len(user)+len(defaults))
	seen := make(map[string]bool)
	for _, name := range append(slices.Clone(user), defaults...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	return merged
}
