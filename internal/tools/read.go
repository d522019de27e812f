// Package tools implements the MCP tool handlers for dirdocs.
//
// Each tool is a struct with its dependencies injected via constructor;
// Definition() returns the mcp.Tool schema and Handle() processes the
// request. One file per tool.
package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/ThomsenDrake/dirdocs/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReadToolName is the name of the workspace read tool. The injector
// matches completed calls against this name.
const ReadToolName = "workspace_read"

// ReadTool handles the workspace_read MCP tool. It is the read-like
// operation whose results the injection hook augments.
type ReadTool struct {
	root string // canonical workspace root
}

// NewReadTool creates a ReadTool bound to a canonical workspace root.
func NewReadTool(root string) *ReadTool {
	return &ReadTool{root: root}
}

// Definition returns the MCP tool definition for registration.
func (t *ReadTool) Definition() mcp.Tool {
	return mcp.NewTool(ReadToolName,
		mcp.WithDescription(
			"Read a text file from the workspace. The path may be absolute or "+
				"relative to the workspace root. Nearby directory documentation "+
				"(AGENTS.md and similar) is appended to the result the first time "+
				"it applies in a session.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to read, absolute or workspace-relative"),
		),
	)
}

// Handle processes the workspace_read tool call.
func (t *ReadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("path", "")
	if raw == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	path, err := docs.ResolveWithin(t.root, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading %s: %v", docs.Rel(t.root, path), err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
