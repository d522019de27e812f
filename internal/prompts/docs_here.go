// Package prompts implements the MCP prompt handlers for dirdocs.
//
// MCP prompts are user-triggered workflows (like slash commands). The
// docs-here prompt steers the client to fetch directory documentation on
// demand via the docs_for_dir tool.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DocsHerePrompt handles the docs-here MCP prompt.
type DocsHerePrompt struct{}

// NewDocsHerePrompt creates a DocsHerePrompt.
func NewDocsHerePrompt() *DocsHerePrompt {
	return &DocsHerePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DocsHerePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("docs-here",
		mcp.WithPromptDescription(
			"Show the directory documentation (AGENTS.md and similar) that "+
				"applies to a directory, including the workspace root.",
		),
		mcp.WithArgument("directory",
			mcp.ArgumentDescription("Directory to resolve docs for. Default: the workspace root"),
		),
	)
}

// Handle processes the docs-here prompt request.
func (p *DocsHerePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	directory := "."
	if args := req.Params.Arguments; args != nil {
		if d, ok := args["directory"]; ok && d != "" {
			directory = d
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Directory docs for %s", directory),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Call the `docs_for_dir` tool with directory='%s' and show me the "+
						"returned documentation. If it reports none found, say so briefly.",
					directory,
				)),
			},
		},
	}, nil
}
