package httpclient

import "context"

// Scope is the view of the process lifespan that a single invocation gets.
// It is the only way for request-level code to reach the shared client.
type Scope interface {
	// TryGetSharedClient returns the shared client, or false when it does
	// not exist or has been closed.
	TryGetSharedClient() (*Client, bool)
}

type scopeKey struct{}

// WithScope returns a copy of ctx carrying scope.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the scope carried by ctx, or nil.
func ScopeFromContext(ctx context.Context) Scope {
	if ctx == nil {
		return nil
	}
	scope, _ := ctx.Value(scopeKey{}).(Scope)
	return scope
}
