// Package app wires the CourtListener MCP server together and runs it.
//
// NewApplication performs the bootstrap: it loads the configuration (YAML
// file, dotenv file and environment), switches logging to the configured
// level and format, and builds every component. Tool groups are registered
// in a fixed order (search, get, citation) after reserving the root
// "status" tool; the first registration error aborts startup.
//
// Run owns the process lifecycle. The shared HTTP client is opened before
// the transport starts and closed after it has stopped, so no invocation
// can observe a half-initialised client. Readiness and shutdown are
// reported to systemd when running under a notify unit. SIGINT and SIGTERM
// trigger a graceful shutdown, as does a stdio client closing its input.
package app
