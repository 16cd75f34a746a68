// Package httpclient owns the single outbound HTTP client shared by every
// tool invocation.
//
// A Lifespan creates the shared Client when the server starts and closes it
// when the server stops. Invocations never see the Lifespan directly: the
// server puts it into each request context as a Scope, and tool code asks a
// Provider for a Lease:
//
//	lease := provider.Acquire(ctx)
//	defer lease.Release()
//	resp, err := lease.Do(req)
//
// When the context has no scope, or the shared client is already closed,
// Acquire returns a lease on a short-lived fallback client (10 connections,
// 5 keep-alive, same timeout) and reports an http_client_fallback event
// through the log, an OpenTelemetry counter and an optional hook. Releasing
// a fallback lease closes that client; releasing a shared lease does nothing.
package httpclient
