package tools

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/ThomsenDrake/dirdocs/internal/config"
	"github.com/ThomsenDrake/dirdocs/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
)

// DocsForDirTool handles the docs_for_dir MCP tool: on-demand resolution
// of the documentation fragments that apply to a directory. Unlike the
// automatic read hook it ignores the session cache (repeat calls return
// full content again) and always includes the workspace root.
type DocsForDirTool struct {
	cfg  config.Settings
	root string // canonical workspace root
}

// NewDocsForDirTool creates a DocsForDirTool.
func NewDocsForDirTool(cfg config.Settings, root string) *DocsForDirTool {
	return &DocsForDirTool{cfg: cfg, root: root}
}

// Definition returns the MCP tool definition for registration.
func (t *DocsForDirTool) Definition() mcp.Tool {
	return mcp.NewTool("docs_for_dir",
		mcp.WithDescription(
			"Collect the directory documentation (AGENTS.md and similar) that "+
				"applies to a directory: every matching file from the workspace "+
				"root down to the directory itself, outermost first.",
		),
		mcp.WithString("directory",
			mcp.Required(),
			mcp.Description("Directory to resolve docs for, absolute or workspace-relative"),
		),
	)
}

// Handle processes the docs_for_dir tool call.
func (t *DocsForDirTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("directory", "")
	if raw == "" {
		return mcp.NewToolResultError("'directory' is required"), nil
	}

	dir, err := docs.ResolveWithin(t.root, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Manual invocation always includes the root directory.
	fragments := docs.Resolve(dir, t.root, t.cfg.Filenames, false)
	if len(fragments) == 0 {
		return mcp.NewToolResultText("No directory documentation found for " + docs.Rel(t.root, dir) + "."), nil
	}

	var blocks []string
	for _, path := range fragments {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("dirdocs: reading %s: %v (fragment skipped)", path, err)
			continue
		}
		rel := docs.Rel(t.root, path)
		blocks = append(blocks, docs.Format(rel, docs.Bound(string(data), t.cfg.MaxContextSize, rel)))
	}
	if len(blocks) == 0 {
		return mcp.NewToolResultText("No directory documentation found for " + docs.Rel(t.root, dir) + "."), nil
	}

	return mcp.NewToolResultText(strings.Join(blocks, docs.Separator)), nil
}
