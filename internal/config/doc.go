// Package config loads the process-wide settings of the CourtListener MCP
// server.
//
// # Sources
//
// Load merges four layers, each overriding the previous one:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. An optional YAML settings file with flat keys (--config)
//  3. A dotenv file, ".env" in the working directory by default (--env-file)
//  4. The process environment
//
// Keys are matched case-insensitively and unrecognised keys are ignored, so
// a shared .env file may carry settings for other tools. Empty values count
// as unset.
//
// # Keys
//
//	HOST                     127.0.0.1
//	MCP_PORT                 8000
//	MCP_TRANSPORT            stdio (stdio, http, streamable-http, sse)
//	MCP_PATH                 /mcp/
//	COURTLISTENER_LOG_LEVEL  INFO
//	COURTLISTENER_DEBUG      false
//	COURTLISTENER_LOG_FILE   (unset)
//	ENVIRONMENT              production
//	COURTLISTENER_BASE_URL   https://www.courtlistener.com/api/rest/v4/
//	COURTLISTENER_API_KEY    (unset)
//	COURTLISTENER_TIMEOUT    30 (seconds, or a duration such as 45s)
//
// # Errors
//
// A malformed value for a recognised key, an unreadable settings file or
// malformed YAML returns a *LoadError. It is the only failure Load reports and
// it is fatal at startup.
//
// The loaded Config is never modified afterwards. The API credential it
// captures is only a fallback; see package credentials for the runtime lookup.
package config
