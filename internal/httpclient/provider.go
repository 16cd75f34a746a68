package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FallbackReason explains why Acquire could not hand out the shared client.
type FallbackReason string

const (
	// ReasonScopeAbsent means the invocation carried no lifespan scope,
	// e.g. a handler called outside the server.
	ReasonScopeAbsent FallbackReason = "scope_absent"
	// ReasonSharedUnavailable means the scope had no open shared client.
	ReasonSharedUnavailable FallbackReason = "shared_client_unavailable"
)

// FallbackEvent is the log event name of a fallback.
const FallbackEvent = "http_client_fallback"

const instrumentationName = "github.com/Travis-Prall/court-listener-mcp/internal/httpclient"

// Provider hands out clients to tool handlers.
type Provider struct {
	timeout    time.Duration
	onFallback func(ctx context.Context, reason FallbackReason)
	fallbacks  metric.Int64Counter
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithFallbackHook registers a function called on every fallback.
func WithFallbackHook(fn func(ctx context.Context, reason FallbackReason)) ProviderOption {
	return func(p *Provider) {
		p.onFallback = fn
	}
}

// NewProvider creates a Provider. timeout applies to fallback clients and
// should equal the shared client's timeout.
func NewProvider(timeout time.Duration, opts ...ProviderOption) *Provider {
	p := &Provider{timeout: timeout}
	for _, opt := range opts {
		opt(p)
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"courtlistener.http_client.fallbacks",
		metric.WithDescription("Number of tool invocations served by a fallback HTTP client"),
	)
	if err != nil {
		logging.Warn("HTTPClient", "Fallback counter unavailable: %v", err)
	} else {
		p.fallbacks = counter
	}
	return p
}

// Acquire returns a lease on the shared client from the scope carried by
// ctx. If there is no scope, or its shared client is closed, it builds a
// fallback client with the same timeout and a bounded pool and reports the
// fallback. Acquire never fails.
func (p *Provider) Acquire(ctx context.Context) *Lease {
	scope := ScopeFromContext(ctx)
	if scope != nil {
		if client, ok := scope.TryGetSharedClient(); ok {
			return &Lease{client: client}
		}
		return p.fallback(ctx, ReasonSharedUnavailable)
	}
	return p.fallback(ctx, ReasonScopeAbsent)
}

func (p *Provider) fallback(ctx context.Context, reason FallbackReason) *Lease {
	client := newClient(p.timeout, poolLimits{
		maxConns:     MaxConnections,
		maxKeepAlive: MaxKeepAliveConnections,
	})

	logging.Event(logging.LevelWarn, "HTTPClient", FallbackEvent,
		"Creating fallback HTTP client (lifespan client unavailable or closed)",
		slog.String("reason", string(reason)),
		slog.String("client_id", client.ID()),
	)
	if p.fallbacks != nil {
		p.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", string(reason))))
	}
	if p.onFallback != nil {
		p.onFallback(ctx, reason)
	}

	return &Lease{client: client, owned: true}
}

// Lease is a borrowed client for the duration of one invocation.
type Lease struct {
	client *Client
	owned  bool
	once   sync.Once
}

// Do sends req through the leased client.
func (l *Lease) Do(req *http.Request) (*http.Response, error) {
	return l.client.Do(req)
}

// Client returns the leased client.
func (l *Lease) Client() *Client {
	return l.client
}

// Shared reports whether the lease is on the process-wide shared client.
func (l *Lease) Shared() bool {
	return !l.owned
}

// Release ends the lease. A fallback client is closed; the shared client is
// left untouched.
func (l *Lease) Release() {
	l.once.Do(func() {
		if l.owned {
			l.client.close()
		}
	})
}
