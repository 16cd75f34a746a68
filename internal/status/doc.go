// Package status builds the health snapshot served by the root "status"
// tool and the "status" CLI command.
//
// A snapshot reports the service name and version, the runtime environment
// (docker or native), process metrics read from /proc and the serving
// configuration. Building one never fails and never touches the network.
// Metric sampling runs under a deadline; a metric that errors, panics or
// takes too long is reported as Sentinel (-1), and the formatted uptime as
// "unknown".
package status
