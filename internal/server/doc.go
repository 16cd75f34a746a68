// Package server exposes the tool registry over the Model Context Protocol.
//
// New builds an mcp-go server holding the root "status" tool and every
// registered tool. A tool-handler middleware attaches the shared HTTP client
// scope to each invocation context, which is how handlers reach the client
// owned by the application lifespan.
//
// Start serves one of three transports, chosen by configuration:
//
//   - stdio: JSON-RPC over the process's standard streams
//   - streamable-http: a single endpoint at the configured path
//   - sse: Server-Sent Events at <path>/sse with messages posted to <path>/message
//
// HTTP listeners are bound before Start returns, so an address in use is
// reported immediately. Stop drains in-flight HTTP requests for up to
// ShutdownTimeout.
package server
