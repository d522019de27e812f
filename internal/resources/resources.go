// Package resources implements the MCP resource handlers for dirdocs.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (docs://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThomsenDrake/dirdocs/internal/audit"
	"github.com/ThomsenDrake/dirdocs/internal/config"
	"github.com/ThomsenDrake/dirdocs/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages the dirdocs resource endpoints.
type Handler struct {
	cfg   config.Settings
	root  string
	cache *session.Cache
	audit *audit.Store // nil when auditing is disabled
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(cfg config.Settings, root string, cache *session.Cache, auditStore *audit.Store) *Handler {
	return &Handler{cfg: cfg, root: root, cache: cache, audit: auditStore}
}

// status is the JSON payload served at docs://status.
type status struct {
	WorkspaceRoot   string          `json:"workspace_root"`
	Settings        config.Settings `json:"settings"`
	TrackedSessions int             `json:"tracked_sessions"`
	Audit           *audit.Stats    `json:"audit,omitempty"`
}

// StatusResource returns the MCP resource definition for server status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"docs://status",
		"dirdocs status",
		mcp.WithResourceDescription("Workspace root, effective settings, session and injection counters"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current server status as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st := status{
		WorkspaceRoot:   h.root,
		Settings:        h.cfg,
		TrackedSessions: h.cache.Len(),
	}
	if h.audit != nil {
		if stats, err := h.audit.Aggregate(); err == nil {
			st.Audit = &stats
		}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
