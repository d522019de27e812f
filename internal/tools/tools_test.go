package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThomsenDrake/dirdocs/internal/audit"
	"github.com/ThomsenDrake/dirdocs/internal/config"
	"github.com/ThomsenDrake/dirdocs/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// newWorkspace builds a canonical temp workspace with a root doc, a
// nested doc, and a source file.
func newWorkspace(t *testing.T) string {
	t.Helper()
	root, err := docs.CanonicalRoot(t.TempDir())
	if err != nil {
		t.Fatalf("CanonicalRoot failed: %v", err)
	}
	writeFile(t, root, "AGENTS.md", "root-doc")
	writeFile(t, root, "src/AGENTS.md", "src-doc")
	writeFile(t, root, "src/main.go", "package main")
	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// ─── ReadTool ────────────────────────────────────────────────────────────────

func TestReadTool_Definition(t *testing.T) {
	def := NewReadTool("/work").Definition()

	if def.Name != ReadToolName {
		t.Errorf("tool name = %q, want %q", def.Name, ReadToolName)
	}
	if _, ok := def.InputSchema.Properties["path"]; !ok {
		t.Error("missing 'path' parameter")
	}
	found := false
	for _, r := range def.InputSchema.Required {
		if r == "path" {
			found = true
		}
	}
	if !found {
		t.Error("'path' should be required")
	}
}

func TestReadTool_ReadsRelativePath(t *testing.T) {
	root := newWorkspace(t)
	tool := NewReadTool(root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"path": "src/main.go",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}
	if got := resultText(result); got != "package main" {
		t.Errorf("read content = %q, want 'package main'", got)
	}
}

func TestReadTool_RejectsTraversal(t *testing.T) {
	root := newWorkspace(t)
	tool := NewReadTool(root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"path": "../../etc/passwd",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("traversal outside the root should yield an error result")
	}
}

func TestReadTool_MissingPath(t *testing.T) {
	root := newWorkspace(t)
	tool := NewReadTool(root)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("missing path should yield an error result")
	}
}

func TestReadTool_MissingFile(t *testing.T) {
	root := newWorkspace(t)
	tool := NewReadTool(root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"path": "src/ghost.go",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("reading a missing file should yield an error result")
	}
}

// ─── DocsForDirTool ──────────────────────────────────────────────────────────

func TestDocsForDirTool_Definition(t *testing.T) {
	def := NewDocsForDirTool(config.Default(), "/work").Definition()

	if def.Name != "docs_for_dir" {
		t.Errorf("tool name = %q, want docs_for_dir", def.Name)
	}
	if _, ok := def.InputSchema.Properties["directory"]; !ok {
		t.Error("missing 'directory' parameter")
	}
}

func TestDocsForDirTool_AlwaysIncludesRoot(t *testing.T) {
	root := newWorkspace(t)
	cfg := config.Default()
	cfg.ExcludeRoot = true // manual tool overrides this
	tool := NewDocsForDirTool(cfg, root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"directory": "src",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "root-doc") || !strings.Contains(text, "src-doc") {
		t.Errorf("manual resolution should include the root doc, got %q", text)
	}
	if strings.Index(text, "root-doc") > strings.Index(text, "src-doc") {
		t.Errorf("outermost doc should come first, got %q", text)
	}
}

func TestDocsForDirTool_RepeatCallsReturnFullContent(t *testing.T) {
	root := newWorkspace(t)
	tool := NewDocsForDirTool(config.Default(), root)

	for i := 0; i < 2; i++ {
		result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
			"directory": "src",
		}))
		if err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
		if text := resultText(result); !strings.Contains(text, "src-doc") {
			t.Errorf("call %d: manual tool must not deduplicate, got %q", i+1, text)
		}
	}
}

func TestDocsForDirTool_NoneFound(t *testing.T) {
	root, err := docs.CanonicalRoot(t.TempDir())
	if err != nil {
		t.Fatalf("CanonicalRoot failed: %v", err)
	}
	writeFile(t, root, "src/main.go", "package main")
	tool := NewDocsForDirTool(config.Default(), root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"directory": "src",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if text := resultText(result); !strings.Contains(text, "No directory documentation found") {
		t.Errorf("expected explicit none-found message, got %q", text)
	}
}

func TestDocsForDirTool_RejectsOutsideDirectory(t *testing.T) {
	root := newWorkspace(t)
	tool := NewDocsForDirTool(config.Default(), root)

	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"directory": "../..",
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("directories outside the root should yield an error result")
	}
}

func TestDocsForDirTool_MissingDirectoryArg(t *testing.T) {
	root := newWorkspace(t)
	tool := NewDocsForDirTool(config.Default(), root)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !result.IsError {
		t.Error("missing directory should yield an error result")
	}
}

// ─── StatsTool ───────────────────────────────────────────────────────────────

func TestStatsTool_NilStore(t *testing.T) {
	tool := NewStatsTool(nil)

	result, err := tool.Handle(context.Background(), makeReq(nil))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if text := resultText(result); !strings.Contains(text, "not available") {
		t.Errorf("nil store should report unavailability, got %q", text)
	}
}

func TestStatsTool_ReportsCounts(t *testing.T) {
	store, err := audit.New(audit.Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("audit.New failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Record("s1", "/proj/AGENTS.md", 10, false); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	tool := NewStatsTool(store)
	result, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"recent": 5.0,
	}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := resultText(result)
	if !strings.Contains(text, "Total injections: 1") {
		t.Errorf("stats output missing totals: %q", text)
	}
	if !strings.Contains(text, "/proj/AGENTS.md") {
		t.Errorf("stats output missing recent entry: %q", text)
	}
}
