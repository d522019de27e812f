// Package injector coordinates automatic documentation injection.
//
// The Injector runs as an after-tool-call hook: when a read-like tool
// finishes, it resolves the documentation fragments that apply to the
// file just read, filters out fragments the session has already seen,
// and appends the rest to the tool result as one extra text block.
// Injection is strictly additive and best-effort — no failure here ever
// alters the outcome of the triggering call.
package injector

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThomsenDrake/dirdocs/internal/audit"
	"github.com/ThomsenDrake/dirdocs/internal/config"
	"github.com/ThomsenDrake/dirdocs/internal/docs"
	"github.com/ThomsenDrake/dirdocs/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// blockHeader opens the injected text block so the client can tell it
// apart from the tool's own output.
const blockHeader = "Directory documentation (injected by dirdocs):"

// Injector wires the resolver, the session cache, and the optional audit
// store behind the read hook.
type Injector struct {
	cfg       config.Settings
	root      string // canonical workspace root
	cache     *session.Cache
	audit     *audit.Store // nil when auditing is disabled
	readTools map[string]struct{}
}

// New creates an Injector. root must already be canonical (see
// docs.CanonicalRoot). readTools names the tools whose results receive
// injected context; auditStore may be nil.
func New(cfg config.Settings, root string, cache *session.Cache, auditStore *audit.Store, readTools ...string) *Injector {
	tools := make(map[string]struct{}, len(readTools))
	for _, name := range readTools {
		tools[name] = struct{}{}
	}
	return &Injector{
		cfg:       cfg,
		root:      root,
		cache:     cache,
		audit:     auditStore,
		readTools: tools,
	}
}

// AfterCallTool adapts Inject to mcp-go's after-call-tool hook signature.
// The session identifier is taken from the client session on the context;
// transports without one (direct in-process calls) share a single
// "local" session.
func (in *Injector) AfterCallTool(ctx context.Context, id any, message *mcp.CallToolRequest, result any) {
	res, ok := result.(*mcp.CallToolResult)
	if !ok {
		return
	}
	sessionID := "local"
	if cs := server.ClientSessionFromContext(ctx); cs != nil {
		sessionID = cs.SessionID()
	}
	in.Inject(sessionID, message, res)
}

// Inject handles one completed tool call. It mutates result in place,
// appending at most one text content block. Calls for non-read tools,
// error results, and disabled configuration are ignored.
func (in *Injector) Inject(sessionID string, req *mcp.CallToolRequest, result *mcp.CallToolResult) {
	if !in.cfg.Enabled || req == nil || result == nil || result.IsError {
		return
	}
	if _, ok := in.readTools[req.Params.Name]; !ok {
		return
	}

	raw, ok := req.GetArguments()["path"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		log.Printf("dirdocs: %s call without a usable path argument, skipping injection", req.Params.Name)
		return
	}

	target, err := docs.ResolveWithin(in.root, raw)
	if err != nil {
		log.Printf("dirdocs: WARNING: %v", err)
		return
	}

	fragments := docs.Resolve(filepath.Dir(target), in.root, in.cfg.Filenames, in.cfg.ExcludeRoot)

	var blocks []string
	for _, path := range fragments {
		if in.cache.WasDelivered(sessionID, path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			// Vanished or unreadable between discovery and read — skip
			// this one fragment, keep the rest.
			log.Printf("dirdocs: reading %s: %v (fragment skipped)", path, err)
			continue
		}
		rel := docs.Rel(in.root, path)
		bounded := docs.Bound(string(data), in.cfg.MaxContextSize, rel)
		in.cache.MarkDelivered(sessionID, path)
		in.record(sessionID, path, len(bounded), len(bounded) != len(data))
		blocks = append(blocks, docs.Format(rel, bounded))
	}
	if len(blocks) == 0 {
		return
	}

	text := blockHeader + "\n\n" + strings.Join(blocks, docs.Separator)
	result.Content = append(result.Content, mcp.NewTextContent(text))
}

// EndSession releases the session's delivered-fragment state.
func (in *Injector) EndSession(sessionID string) {
	in.cache.Terminate(sessionID)
}

// record logs a delivery to the audit store, if one is configured.
func (in *Injector) record(sessionID, path string, bytes int, truncated bool) {
	if in.audit == nil {
		return
	}
	if err := in.audit.Record(sessionID, path, bytes, truncated); err != nil {
		log.Printf("dirdocs: %v", err)
	}
}
