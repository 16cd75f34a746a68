package registry

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Separator joins a namespace and a local tool name into an identifier.
const Separator = "_"

// Handler executes one tool invocation and returns a structured payload.
// Errors should be *api.Error values; anything else is reported to callers
// as an internal error.
type Handler func(ctx context.Context, args Arguments) (map[string]any, error)

// Tool is a single operation offered by a group.
type Tool struct {
	// Name is the local name, unique within the group.
	Name        string
	Description string
	// Options describe the parameters, e.g. mcp.WithString("q", mcp.Required()).
	Options []mcp.ToolOption
	Handler Handler
}

// Group is a set of tools mounted together under one namespace.
type Group interface {
	Tools() []Tool
}

// Tools is a static Group.
type Tools []Tool

// Tools implements Group.
func (t Tools) Tools() []Tool {
	return t
}

// Namespace pairs a group with the prefix it is mounted under.
type Namespace struct {
	Name  string
	Group Group
}

// Entry is a registered tool.
type Entry struct {
	Namespace  string
	LocalName  string
	Identifier string
	Tool       Tool

	schema   mcp.Tool
	required []string
}

// Schema returns the MCP description of the tool under its identifier.
func (e Entry) Schema() mcp.Tool {
	return e.schema
}

// Required lists the parameters that must be present on every call.
func (e Entry) Required() []string {
	return e.required
}

// Identify returns the identifier of local within namespace.
func Identify(namespace, local string) string {
	return namespace + Separator + local
}
