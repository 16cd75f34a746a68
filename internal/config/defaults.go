package config

import (
	"net"
	"strconv"
	"time"
)

const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 8000
	DefaultTransport   = MCPTransportStdio
	DefaultPath        = "/mcp/"
	DefaultLogLevel    = "INFO"
	DefaultEnvironment = "production"
	DefaultBaseURL     = "https://www.courtlistener.com/api/rest/v4/"
	DefaultTimeout     = 30 * time.Second
)

// Recognised setting keys. Matching is case-insensitive in every source.
const (
	KeyHost        = "HOST"
	KeyPort        = "MCP_PORT"
	KeyTransport   = "MCP_TRANSPORT"
	KeyPath        = "MCP_PATH"
	KeyLogLevel    = "COURTLISTENER_LOG_LEVEL"
	KeyDebug       = "COURTLISTENER_DEBUG"
	KeyLogFile     = "COURTLISTENER_LOG_FILE"
	KeyEnvironment = "ENVIRONMENT"
	KeyBaseURL     = "COURTLISTENER_BASE_URL"
	KeyAPIKey      = "COURTLISTENER_API_KEY"
	KeyTimeout     = "COURTLISTENER_TIMEOUT"
)

// DefaultEnvFile is the dotenv file read when LoadOptions.EnvFile is empty.
const DefaultEnvFile = ".env"

// GetDefaultConfig returns the configuration used for every unset key.
func GetDefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Port:        DefaultPort,
		Transport:   DefaultTransport,
		Path:        DefaultPath,
		LogLevel:    DefaultLogLevel,
		Debug:       false,
		Environment: DefaultEnvironment,
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
	}
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
