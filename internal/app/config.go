package app

import (
	"io"

	"github.com/Travis-Prall/court-listener-mcp/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of the loaded settings.
	Debug bool

	// ConfigPath is an optional YAML settings file.
	ConfigPath string

	// EnvFile is the dotenv file; empty means ".env" in the working directory.
	EnvFile string

	// Transport overrides MCP_TRANSPORT when set.
	Transport string

	// Version is the build version reported by the server.
	Version string

	// Settings is the loaded configuration. NewApplication loads it when nil.
	Settings *config.Config

	// Environ and the standard streams are replaceable for tests.
	Environ func() []string
	Stdin   io.Reader
	Stdout  io.Writer
	LogOut  io.Writer
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath, envFile, transport, version string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
		EnvFile:    envFile,
		Transport:  transport,
		Version:    version,
	}
}

// LoadSettings reads the configuration layers and applies the command-line
// overrides.
func (c *Config) LoadSettings() (config.Config, error) {
	settings, err := config.Load(config.LoadOptions{
		ConfigFile: c.ConfigPath,
		EnvFile:    c.EnvFile,
		Environ:    c.Environ,
	})
	if err != nil {
		return config.Config{}, err
	}
	return c.applyOverrides(settings)
}

func (c *Config) applyOverrides(settings config.Config) (config.Config, error) {
	if c.Transport != "" {
		if err := config.SetValue(&settings, config.KeyTransport, c.Transport); err != nil {
			return config.Config{}, err
		}
	}
	if c.Debug {
		settings.Debug = true
	}
	return settings, nil
}
