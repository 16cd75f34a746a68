package httpclient

import (
	"errors"
	"sync"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"
)

var (
	// ErrAlreadyOpened is returned when Open is called more than once.
	ErrAlreadyOpened = errors.New("shared http client already opened")
	// ErrLifespanClosed is returned when Open is called after Close.
	ErrLifespanClosed = errors.New("lifespan already closed")
)

// Lifespan owns the process-wide shared Client. It creates the client once,
// before the server accepts invocations, and closes it once, after the
// server has drained. It implements Scope.
type Lifespan struct {
	timeout time.Duration

	mu     sync.RWMutex
	client *Client
	closed bool
}

// NewLifespan creates a lifespan whose shared client uses the given timeout.
func NewLifespan(timeout time.Duration) *Lifespan {
	return &Lifespan{timeout: timeout}
}

// Open creates the shared client.
func (l *Lifespan) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLifespanClosed
	}
	if l.client != nil {
		return ErrAlreadyOpened
	}

	l.client = newClient(l.timeout, poolLimits{
		maxConns:     SharedMaxConnections,
		maxKeepAlive: SharedMaxKeepAliveConnections,
	})
	logging.Info("HTTPClient", "Opened shared HTTP client %s (timeout %s)", l.client.ID(), l.timeout)
	return nil
}

// Close closes the shared client. Calling it again, or before Open, is a no-op.
func (l *Lifespan) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.client != nil {
		l.client.close()
		logging.Info("HTTPClient", "Closed shared HTTP client %s", l.client.ID())
	}
	return nil
}

// TryGetSharedClient returns the shared client while it is open.
func (l *Lifespan) TryGetSharedClient() (*Client, bool) {
	if l == nil {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.client == nil || l.client.IsClosed() {
		return nil, false
	}
	return l.client, true
}
