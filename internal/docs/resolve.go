// Package docs discovers and prepares directory documentation fragments.
//
// A fragment is a convention file (AGENTS.md, CLAUDE.md, ...) placed in
// some directory of the workspace. Resolve walks the ancestor chain of a
// directory and collects the nearest fragments; Bound trims a fragment's
// content to a size budget without cutting mid-structure.
package docs

import (
	"os"
	"path/filepath"
	"slices"
)

// maxWalkDepth bounds the ancestor walk. Equality checks already terminate
// the loop at the workspace root and the filesystem root; this is a
// backstop against symlinked ancestor cycles.
const maxWalkDepth = 64

// Resolve walks from startDir up to root collecting, per directory, the
// first of filenames that names an existing regular file. startDir and
// root must be absolute, cleaned paths. Results are ordered outermost
// first, so concatenating them layers general docs before specific ones.
//
// When excludeRoot is true, root itself is never examined. A startDir
// outside the root subtree yields whatever was collected before the walk
// left the subtree — for well-formed inputs, nothing.
func Resolve(startDir, root string, filenames []string, excludeRoot bool) []string {
	var found []string

	dir := startDir
	for depth := 0; depth < maxWalkDepth; depth++ {
		atRoot := dir == root
		if atRoot && excludeRoot {
			break
		}
		if !atRoot && !Within(root, dir) {
			break
		}

		for _, name := range filenames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				found = append(found, candidate)
				break
			}
		}

		if atRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	// The walk runs leaf to root; callers want root to leaf.
	slices.Reverse(found)
	return found
}
