package docs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CanonicalRoot returns the absolute, symlink-resolved form of root.
// Every containment check in this package compares against a canonical
// root, so relative arguments and symlinked workspace directories can't
// defeat the boundary.
func CanonicalRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving workspace root %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving workspace root %s: %w", abs, err)
	}
	return filepath.Clean(resolved), nil
}

// ResolveWithin normalizes p against the canonical workspace root and
// rejects it if the cleaned result escapes the root. Relative paths are
// joined to the root before cleaning, so "../../etc/passwd" collapses to
// a path outside the root and fails the containment check.
func ResolveWithin(root, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)
	if !Within(root, p) {
		return "", fmt.Errorf("path %s is outside the workspace root %s", p, root)
	}
	return p, nil
}

// Within reports whether p is root itself or lies inside root's subtree.
// Both paths must already be absolute and cleaned.
func Within(root, p string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

// Rel returns p relative to root for display, falling back to p itself
// when the paths don't share a prefix.
func Rel(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return p
	}
	return rel
}
