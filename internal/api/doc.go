// Package api defines the error taxonomy shared by every layer of the
// server and the structured error payload returned to tool callers.
//
// Each failure that can reach a caller is an *Error with a stable ErrorKind.
// Startup kinds (config_load_error, registration_error) abort the process;
// invocation kinds are converted to a structured result at the registry
// boundary and never terminate the server.
//
//	if _, err := credentials.BuildAuthHeaders(src); api.IsKind(err, api.KindAuthenticationConfig) {
//	    // surface to the caller of this invocation only
//	}
package api
