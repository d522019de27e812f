// dirdocs: directory documentation MCP server
//
// A universal MCP server that surfaces per-directory documentation
// (AGENTS.md, CLAUDE.md, ...) to any AI coding tool: reads through its
// workspace_read tool are automatically augmented with the nearest
// applicable docs, once per session per file.
//
// Usage:
//
//	dirdocs serve [--root DIR]   # Start MCP server (stdio transport)
package main

import (
	"flag"
	"fmt"
	"os"

	docsserver "github.com/ThomsenDrake/dirdocs/internal/server"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("dirdocs v%s\n", docsserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	root := fs.String("root", "", "workspace root directory (default: current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	workspaceRoot := *root
	if workspaceRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workspaceRoot = cwd
	}

	s, cleanup, err := docsserver.New(workspaceRoot)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dirdocs v%s — directory documentation MCP server

Usage:
  dirdocs serve [--root DIR]   Start the MCP server (stdio transport)
  dirdocs version              Print the version

Configuration:
  Optional settings file at <root>/.dirdocs.json:

  {
    "enabled": true,
    "max_context_size": 10000,
    "filenames": ["TEAM.md"],
    "exclude_root": false,
    "session_capacity": 100
  }

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "dirdocs": {
        "command": "dirdocs",
        "args": ["serve", "--root", "/path/to/workspace"]
      }
    }
  }
`, docsserver.Version)
}
