// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it loads settings, creates the session
// cache, the injector and the optional audit store, and registers every
// tool, prompt, resource and hook. No business logic lives here.
package server

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ThomsenDrake/dirdocs/internal/audit"
	"github.com/ThomsenDrake/dirdocs/internal/config"
	"github.com/ThomsenDrake/dirdocs/internal/docs"
	"github.com/ThomsenDrake/dirdocs/internal/injector"
	"github.com/ThomsenDrake/dirdocs/internal/prompts"
	"github.com/ThomsenDrake/dirdocs/internal/resources"
	"github.com/ThomsenDrake/dirdocs/internal/session"
	"github.com/ThomsenDrake/dirdocs/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server for the given workspace root.
//
// The returned cleanup function closes the audit store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if audit init failed.
func New(workspaceRoot string) (*server.MCPServer, func(), error) {
	root, err := docs.CanonicalRoot(workspaceRoot)
	if err != nil {
		return nil, noop, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, noop, fmt.Errorf("loading settings: %w", err)
	}

	cache := session.NewCache(cfg.SessionCapacity)

	// Auditing is an independent subsystem: if it fails to initialize,
	// injection continues working. We log a warning and run without it.
	cleanup := noop
	auditStore, auditErr := audit.New(audit.DefaultConfig())
	if auditErr != nil {
		log.Printf("WARNING: injection auditing disabled: %v", auditErr)
		auditStore = nil
	} else {
		cleanup = func() {
			if err := auditStore.Close(); err != nil {
				log.Printf("WARNING: audit store close: %v", err)
			}
		}
	}

	inj := injector.New(cfg, root, cache, auditStore, tools.ReadToolName)

	// --- Hook the host runtime ---
	//
	// AfterCallTool is the "read completed" notification: the injector
	// filters by tool name, so registering it globally is safe.
	// OnUnregisterSession releases the session's delivered-fragment state.
	hooks := &server.Hooks{}
	hooks.AddAfterCallTool(inj.AfterCallTool)
	hooks.AddOnUnregisterSession(func(ctx context.Context, cs server.ClientSession) {
		inj.EndSession(cs.SessionID())
	})

	s := server.NewMCPServer(
		"dirdocs",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(hooks),
		server.WithInstructions(serverInstructions(cfg)),
	)

	// --- Register tools ---

	readTool := tools.NewReadTool(root)
	s.AddTool(readTool.Definition(), readTool.Handle)

	docsTool := tools.NewDocsForDirTool(cfg, root)
	s.AddTool(docsTool.Definition(), docsTool.Handle)

	statsTool := tools.NewStatsTool(auditStore)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	// --- Register prompts ---

	docsHere := prompts.NewDocsHerePrompt()
	s.AddPrompt(docsHere.Definition(), docsHere.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(cfg, root, cache, auditStore)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when auditing
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions tells the AI how dirdocs behaves.
func serverInstructions(cfg config.Settings) string {
	mode := `Automatic injection is enabled: the first time a workspace_read result
touches a directory subtree, the documentation that applies there is appended
to the result — once per session per file, outermost file first.`
	if !cfg.Enabled {
		mode = `Automatic injection is disabled in this workspace. Use docs_for_dir
whenever you need the conventions that apply to a directory.`
	}
	return `You have access to dirdocs, a directory documentation server.

Directories in this workspace may carry documentation files (` + strings.Join(cfg.Filenames, ", ") + `)
describing conventions that apply to everything beneath them.

` + mode + `

- Use workspace_read to read files; treat any appended "Directory
  documentation" block as authoritative project conventions.
- Use docs_for_dir to re-fetch the full documentation for a directory at
  any time (it is never deduplicated or withheld).
- Use docs_stats to see what has been injected so far.
- The docs-here prompt is a shortcut for docs_for_dir.`
}
