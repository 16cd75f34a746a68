// Package registry composes independent tool groups into the single flat
// namespace exposed over MCP.
//
// Each group is mounted under a namespace and every tool becomes reachable
// as namespace + "_" + local name, e.g. "search_opinions". Groups are
// registered in a fixed order at startup with RegisterAll, which stops at the
// first RegistrationError: a malformed group or an identifier that is already
// registered or reserved (the root "status" tool reserves its name). A group
// is validated completely before any of its tools are added.
//
// Dispatch does not depend on registration order. Call and the handlers
// returned by ServerTools invoke the resolved handler exactly once and hand
// its payload back unmodified. ServerTools is the boundary to callers: errors
// and panics become error results holding only the error kind, a safe
// message and, for remote failures, the status code and a short detail.
package registry
