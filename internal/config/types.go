package config

import (
	"strings"
	"time"
)

const (
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
)

// EnvironmentDevelopment is the environment tag that enables development behaviour.
const EnvironmentDevelopment = "development"

// Config is the process-wide configuration. It is built once by Load and is
// read-only afterwards; components receive it explicitly.
type Config struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"mcp_port"`
	Transport string `yaml:"mcp_transport"` // stdio, streamable-http or sse
	Path      string `yaml:"mcp_path"`      // HTTP endpoint path for streamable-http and sse

	LogLevel string `yaml:"courtlistener_log_level"`
	Debug    bool   `yaml:"courtlistener_debug"`
	LogFile  string `yaml:"courtlistener_log_file,omitempty"`

	Environment string `yaml:"environment"`

	BaseURL string `yaml:"courtlistener_base_url"`
	// APIKey is the credential captured at load time. Use a credentials.Source
	// to read it; the live environment takes precedence.
	APIKey  string        `yaml:"-"`
	Timeout time.Duration `yaml:"-"`
}

// IsDevelopment reports whether the environment tag is "development".
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, EnvironmentDevelopment)
}

// IsDebugEnabled reports whether the debug flag is set or the log level is DEBUG.
func (c Config) IsDebugEnabled() bool {
	return c.Debug || strings.EqualFold(c.LogLevel, "DEBUG")
}

// Address returns host:port for the HTTP transports.
func (c Config) Address() string {
	return joinHostPort(c.Host, c.Port)
}
