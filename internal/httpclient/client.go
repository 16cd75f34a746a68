package httpclient

import (
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Pool limits of a fallback client.
const (
	MaxConnections          = 10
	MaxKeepAliveConnections = 5
)

// Pool limits of the shared client. It serves every concurrent invocation.
const (
	SharedMaxConnections          = 100
	SharedMaxKeepAliveConnections = 20
)

const idleConnTimeout = 90 * time.Second

// ErrClientClosed is returned by Client.Do after the client was closed.
var ErrClientClosed = errors.New("http client is closed")

// Client is a pooled outbound HTTP client with an explicit closed state.
// Every request it sends is bounded by the client timeout.
type Client struct {
	id        string
	timeout   time.Duration
	transport *http.Transport
	http      *http.Client
	closed    atomic.Bool
}

type poolLimits struct {
	maxConns     int
	maxKeepAlive int
}

func newClient(timeout time.Duration, limits poolLimits) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxConnsPerHost:       limits.maxConns,
		MaxIdleConns:          limits.maxKeepAlive,
		MaxIdleConnsPerHost:   limits.maxKeepAlive,
		IdleConnTimeout:       idleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	return &Client{
		id:        uuid.NewString(),
		timeout:   timeout,
		transport: transport,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// ID identifies the client instance in logs.
func (c *Client) ID() string {
	return c.id
}

// Timeout is the per-request bound applied by the client.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// IsClosed reports whether close was called.
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}

// Do sends req. It fails with ErrClientClosed once the client is closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.IsClosed() {
		return nil, ErrClientClosed
	}
	return c.http.Do(req)
}

// close marks the client closed and drops its idle connections. Only the
// owner of a client may call it: the Lifespan for the shared client and the
// Lease for a fallback client.
func (c *Client) close() {
	if c.closed.CompareAndSwap(false, true) {
		c.transport.CloseIdleConnections()
	}
}
