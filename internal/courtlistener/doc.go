// Package courtlistener is a small REST client for the CourtListener API.
//
// Requests borrow an HTTP client from an httpclient.Provider, resolve the API
// credential on every call and decode JSON bodies into generic maps. Failures
// are reported as *api.Error values: a missing credential as
// authentication_config_error, an expired deadline as remote_timeout_error
// and anything else, including non-2xx responses, as remote_unavailable_error
// carrying the status code and a one-line excerpt of the body.
package courtlistener
