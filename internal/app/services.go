package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Travis-Prall/court-listener-mcp/internal/config"
	"github.com/Travis-Prall/court-listener-mcp/internal/courtlistener"
	"github.com/Travis-Prall/court-listener-mcp/internal/credentials"
	"github.com/Travis-Prall/court-listener-mcp/internal/httpclient"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/server"
	"github.com/Travis-Prall/court-listener-mcp/internal/status"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools/citation"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools/get"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools/search"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"
)

// Services holds the components wired together at startup.
type Services struct {
	Settings    config.Config
	Credentials credentials.Source
	Lifespan    *httpclient.Lifespan
	Provider    *httpclient.Provider
	API         *courtlistener.Client
	Registry    *registry.Registry
	Reporter    *status.Reporter
	Server      *server.Server
}

// Namespaces returns the tool groups in registration order.
func Namespaces(client tools.API) []registry.Namespace {
	return []registry.Namespace{
		{Name: search.Namespace, Group: search.Group(client)},
		{Name: get.Namespace, Group: get.Group(client)},
		{Name: citation.Namespace, Group: citation.Group(client)},
	}
}

// BuildRegistry reserves the root tools and registers every group. The
// returned registry is sealed.
func BuildRegistry(client tools.API) (*registry.Registry, error) {
	reg := registry.New()
	if err := reg.Reserve(server.StatusToolName, "root"); err != nil {
		return nil, err
	}
	if err := reg.RegisterAll(Namespaces(client)); err != nil {
		return nil, err
	}
	reg.Seal()
	return reg, nil
}

// InitializeServices creates every component from the loaded settings. The
// shared HTTP client is not opened here; see Application.Run.
func InitializeServices(cfg *Config, settings config.Config) (*Services, error) {
	creds := credentials.NewEnvSource(settings)
	if _, ok := creds.Resolve(); !ok {
		logging.Warn("Bootstrap", "%s is not set; tools that call CourtListener will fail until it is", credentials.EnvVar)
	}

	lifespan := httpclient.NewLifespan(settings.Timeout)
	provider := httpclient.NewProvider(settings.Timeout, httpclient.WithFallbackHook(
		func(ctx context.Context, reason httpclient.FallbackReason) {
			logging.Event(logging.LevelDebug, "Bootstrap", httpclient.FallbackEvent,
				"Invocation served by a fallback client",
				slog.String("correlation_id", registry.CorrelationID(ctx)),
				slog.String("reason", string(reason)),
			)
		},
	))

	apiClient, err := courtlistener.NewClient(settings.BaseURL, provider, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to create CourtListener client: %w", err)
	}

	reg, err := BuildRegistry(apiClient)
	if err != nil {
		return nil, err
	}

	reporter := status.NewReporter(status.ServerInfo{
		Transport:  settings.Transport,
		APIBase:    settings.BaseURL,
		Host:       settings.Host,
		Port:       settings.Port,
		Namespaces: reg.Namespaces,
	}, cfg.Version)

	srv := server.New(server.Options{
		Config:   settings,
		Version:  status.ResolveVersion(cfg.Version),
		Registry: reg,
		Reporter: reporter,
		Scope:    lifespan,
		Stdin:    cfg.Stdin,
		Stdout:   cfg.Stdout,
	})

	return &Services{
		Settings:    settings,
		Credentials: creds,
		Lifespan:    lifespan,
		Provider:    provider,
		API:         apiClient,
		Registry:    reg,
		Reporter:    reporter,
		Server:      srv,
	}, nil
}
