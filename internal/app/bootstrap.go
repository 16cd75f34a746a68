package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Travis-Prall/court-listener-mcp/internal/config"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"
)

// Application bootstraps and runs the CourtListener MCP server.
//
// Initialization happens in two phases:
//  1. NewApplication loads configuration, sets up logging and registers
//     every tool group. Any failure here aborts startup.
//  2. Run opens the shared HTTP client, serves the configured transport and
//     shuts down on a signal or when the transport ends.
//
// Example usage:
//
//	cfg := app.NewConfig(false, "", "", "", version)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance. A
// *config.LoadError or *registry.RegistrationError is returned wrapped so
// that callers can tell the failure classes apart with errors.As.
func NewApplication(cfg *Config) (*Application, error) {
	logOut := cfg.LogOut
	if logOut == nil {
		logOut = os.Stderr
	}

	bootLevel := logging.LevelInfo
	if cfg.Debug {
		bootLevel = logging.LevelDebug
	}
	logging.InitForCLI(bootLevel, logOut)

	var settings config.Config
	if cfg.Settings != nil {
		s, err := cfg.applyOverrides(*cfg.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to apply command-line settings: %w", err)
		}
		settings = s
	} else {
		s, err := cfg.LoadSettings()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		settings = s
	}
	cfg.Settings = &settings

	if err := initLogging(settings, logOut); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Info("Bootstrap", "Configuration loaded (environment=%s, transport=%s, api=%s)",
		settings.Environment, settings.Transport, settings.BaseURL)

	services, err := InitializeServices(cfg, settings)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// initLogging switches from bootstrap logging to the configured level,
// format and optional log file. Development and debug runs log text;
// everything else logs JSON.
func initLogging(settings config.Config, out io.Writer) error {
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if settings.Debug {
		level = logging.LevelDebug
	}
	format := logging.FormatJSON
	if settings.IsDevelopment() || settings.IsDebugEnabled() {
		format = logging.FormatText
	}
	return logging.Init(logging.Options{
		Level:    level,
		Format:   format,
		Output:   out,
		FilePath: settings.LogFile,
	})
}

// Services exposes the initialized components.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// transport ends.
func (a *Application) Run(ctx context.Context) error {
	defer a.Close()
	return runServer(ctx, a.services)
}

// Close releases the log file. Commands that inspect the services without
// serving call it directly; Run calls it on return.
func (a *Application) Close() {
	if err := logging.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}
