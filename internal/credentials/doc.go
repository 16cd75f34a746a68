// Package credentials resolves the CourtListener API token at call time.
//
// Resolution never caches: every call to Source.Resolve re-reads the
// COURT_LISTENER_API_KEY environment variable and only then falls back to the
// value captured by config.Load. Keeping resolution separate from
// BuildAuthHeaders lets the status tool run without a credential while any
// authenticated call fails early with an authentication_config_error.
package credentials
