// Package logging provides the subsystem-tagged structured logger used across
// the CourtListener MCP server.
//
// It is a thin layer over log/slog. Every record carries a "subsystem"
// attribute so that log consumers can filter by component:
//
//   - Bootstrap: application initialization and shutdown
//   - Config: configuration loading
//   - Registry: tool registration and dispatch
//   - HTTPClient: shared client lifecycle and fallback events
//   - Server: MCP transport lifecycle
//   - Status: health snapshots
//   - Tools: search, get and citation handlers
//
// # Initialization
//
//	if err := logging.Init(logging.Options{
//	    Level:    logging.LevelInfo,
//	    Format:   logging.FormatJSON,
//	    FilePath: "/var/log/courtlistener-mcp.log",
//	}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
// Output defaults to os.Stderr. Standard output is reserved for the MCP
// stdio transport and must never receive log lines.
//
// # Usage
//
//	logging.Info("Bootstrap", "Loaded configuration from %s", path)
//	logging.Error("Server", err, "Streamable HTTP server error")
//	logging.Event(logging.LevelWarn, "HTTPClient", "client_fallback",
//	    "Created fallback HTTP client", slog.String("reason", "scope_absent"))
//
// All functions are safe for concurrent use.
package logging
