package docs

import (
	"os"
	"path/filepath"
	"testing"
)

var testFilenames = []string{"AGENTS.md", "CLAUDE.md"}

// writeDoc creates a documentation file under root.
func writeDoc(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func mkdirs(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	return path
}

func TestResolve_OutermostFirst(t *testing.T) {
	root := t.TempDir()
	rootDoc := writeDoc(t, root, "AGENTS.md", "root-doc")
	srcDoc := writeDoc(t, root, "src/AGENTS.md", "src-doc")
	start := mkdirs(t, root, "src/api")

	got := Resolve(start, root, testFilenames, false)

	want := []string{rootDoc, srcDoc}
	if len(got) != len(want) {
		t.Fatalf("Resolve returned %d paths, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Resolve[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestResolve_FirstFilenameWinsPerDirectory(t *testing.T) {
	root := t.TempDir()
	agents := writeDoc(t, root, "src/AGENTS.md", "agents")
	writeDoc(t, root, "src/CLAUDE.md", "claude")
	start := filepath.Join(root, "src")

	got := Resolve(start, root, testFilenames, true)

	if len(got) != 1 {
		t.Fatalf("Resolve returned %d paths, want 1: %v", len(got), got)
	}
	if got[0] != agents {
		t.Errorf("Resolve[0] = %s, want %s (AGENTS.md has priority)", got[0], agents)
	}
}

func TestResolve_ExcludeRoot(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "AGENTS.md", "root-doc")
	srcDoc := writeDoc(t, root, "src/AGENTS.md", "src-doc")
	start := filepath.Join(root, "src")

	got := Resolve(start, root, testFilenames, true)

	if len(got) != 1 || got[0] != srcDoc {
		t.Errorf("Resolve with excludeRoot = %v, want only %s", got, srcDoc)
	}
}

func TestResolve_IncludeRoot(t *testing.T) {
	root := t.TempDir()
	rootDoc := writeDoc(t, root, "AGENTS.md", "root-doc")

	got := Resolve(root, root, testFilenames, false)

	if len(got) != 1 || got[0] != rootDoc {
		t.Errorf("Resolve at root = %v, want [%s]", got, rootDoc)
	}
}

func TestResolve_StartAtRootExcluded(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, root, "AGENTS.md", "root-doc")

	if got := Resolve(root, root, testFilenames, true); len(got) != 0 {
		t.Errorf("Resolve at excluded root = %v, want empty", got)
	}
}

func TestResolve_NoMatches(t *testing.T) {
	root := t.TempDir()
	start := mkdirs(t, root, "a/b/c")

	if got := Resolve(start, root, testFilenames, false); len(got) != 0 {
		t.Errorf("Resolve with no docs = %v, want empty", got)
	}
}

func TestResolve_DirectoriesWithoutDocsContributeNothing(t *testing.T) {
	root := t.TempDir()
	deepDoc := writeDoc(t, root, "a/b/c/AGENTS.md", "deep")
	start := filepath.Join(root, "a", "b", "c")

	got := Resolve(start, root, testFilenames, false)

	// a/, a/b/ and the root carry no docs, so only the deep doc matches.
	if len(got) != 1 || got[0] != deepDoc {
		t.Errorf("Resolve = %v, want [%s]", got, deepDoc)
	}
}

func TestResolve_StartOutsideRoot(t *testing.T) {
	base := t.TempDir()
	root := mkdirs(t, base, "workspace")
	writeDoc(t, base, "workspace/AGENTS.md", "root-doc")
	outside := mkdirs(t, base, "elsewhere")

	if got := Resolve(outside, root, testFilenames, false); len(got) != 0 {
		t.Errorf("Resolve outside root = %v, want empty", got)
	}
}

func TestResolve_DirectoryNamedLikeCandidateIsSkipped(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "src/AGENTS.md") // a directory, not a file
	start := filepath.Join(root, "src")

	if got := Resolve(start, root, testFilenames, true); len(got) != 0 {
		t.Errorf("Resolve matched a directory: %v", got)
	}
}
