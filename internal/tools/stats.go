package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ThomsenDrake/dirdocs/internal/audit"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsTool handles the docs_stats MCP tool. It reports aggregate
// injection statistics from the audit store.
type StatsTool struct {
	store *audit.Store // nil when auditing is disabled
}

// NewStatsTool creates a StatsTool. A nil store is allowed — the tool
// then reports that auditing is unavailable.
func NewStatsTool(store *audit.Store) *StatsTool {
	return &StatsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("docs_stats",
		mcp.WithDescription(
			"Show injection statistics: how many documentation fragments have "+
				"been delivered, across how many sessions, and which files.",
		),
		mcp.WithNumber("recent",
			mcp.Description("Also list the N most recent injections (default: 0, none)"),
		),
	)
}

// Handle processes the docs_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultText("Injection auditing is not available in this server instance."), nil
	}

	stats, err := t.store.Aggregate()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString("# Injection Statistics\n\n")
	fmt.Fprintf(&sb, "- Total injections: %d\n", stats.TotalInjections)
	fmt.Fprintf(&sb, "- Sessions served: %d\n", stats.TotalSessions)
	fmt.Fprintf(&sb, "- Bytes delivered: %d\n", stats.TotalBytes)
	if len(stats.Paths) > 0 {
		sb.WriteString("\n## Fragments delivered\n\n")
		for _, p := range stats.Paths {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}

	if n := intArg(req, "recent", 0); n > 0 {
		recent, err := t.store.Recent(n)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(recent) > 0 {
			sb.WriteString("\n## Recent injections\n\n")
			for _, inj := range recent {
				fmt.Fprintf(&sb, "- %s → session %s (%d bytes)\n", inj.Path, inj.SessionID, inj.Bytes)
			}
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
