package registry

import (
	"context"
	"fmt"
	"regexp"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// Namespaces cannot contain the separator, so an identifier splits back
	// into exactly one (namespace, local name) pair.
	namespacePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	localNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Registry composes tool groups into one flat namespace of identifiers and
// dispatches invocations to them.
//
// Registration happens once at startup, sequentially. After Seal the set of
// entries is fixed and the registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*Entry
	order    []string
	reserved map[string]string
	sealed   bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries:  make(map[string]*Entry),
		reserved: make(map[string]string),
	}
}

// Reserve claims a root-level identifier, such as "status", that is served
// outside the registry. Groups cannot register it.
func (r *Registry) Reserve(identifier, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return &RegistrationError{Namespace: owner, Identifier: identifier, Reason: "registry is sealed"}
	}
	if _, taken := r.entries[identifier]; taken {
		return &RegistrationError{Namespace: owner, Identifier: identifier, Reason: "is already registered", Collision: true}
	}
	if prev, taken := r.reserved[identifier]; taken {
		return &RegistrationError{Namespace: owner, Identifier: identifier, Reason: fmt.Sprintf("is already reserved by %s", prev), Collision: true}
	}
	r.reserved[identifier] = owner
	return nil
}

// RegisterAll registers the namespaces in order and stops at the first
// failure. Groups registered before the failure stay registered; callers
// are expected to abort startup.
func (r *Registry) RegisterAll(namespaces []Namespace) error {
	for _, ns := range namespaces {
		if err := r.Register(ns.Name, ns.Group); err != nil {
			return err
		}
	}
	return nil
}

// Register mounts every tool of group under namespace. The group is
// validated as a whole first: on error nothing is registered.
func (r *Registry) Register(namespace string, group Group) error {
	if !namespacePattern.MatchString(namespace) {
		return &RegistrationError{Namespace: namespace, Reason: "namespace must be lower-case letters and digits, starting with a letter"}
	}
	if group == nil {
		return &RegistrationError{Namespace: namespace, Reason: "group is nil"}
	}

	tools, err := collectTools(group)
	if err != nil {
		return &RegistrationError{Namespace: namespace, Reason: "group failed to list its tools", Err: err}
	}
	if len(tools) == 0 {
		return &RegistrationError{Namespace: namespace, Reason: "group has no tools"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return &RegistrationError{Namespace: namespace, Reason: "registry is sealed"}
	}

	pending := make([]*Entry, 0, len(tools))
	seen := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if !localNamePattern.MatchString(tool.Name) {
			return &RegistrationError{Namespace: namespace, Identifier: tool.Name, Reason: "tool name must be lower-case letters, digits and underscores"}
		}
		if tool.Handler == nil {
			return &RegistrationError{Namespace: namespace, Identifier: tool.Name, Reason: "tool has no handler"}
		}

		id := Identify(namespace, tool.Name)
		switch {
		case seen[id]:
			return &RegistrationError{Namespace: namespace, Identifier: id, Reason: "is defined twice in the group", Collision: true}
		case r.entries[id] != nil:
			return &RegistrationError{Namespace: namespace, Identifier: id, Reason: fmt.Sprintf("is already registered by namespace %q", r.entries[id].Namespace), Collision: true}
		}
		if owner, taken := r.reserved[id]; taken {
			return &RegistrationError{Namespace: namespace, Identifier: id, Reason: fmt.Sprintf("is reserved by %s", owner), Collision: true}
		}
		seen[id] = true

		schema := mcp.NewTool(id, append([]mcp.ToolOption{mcp.WithDescription(tool.Description)}, tool.Options...)...)
		pending = append(pending, &Entry{
			Namespace:  namespace,
			LocalName:  tool.Name,
			Identifier: id,
			Tool:       tool,
			schema:     schema,
			required:   append([]string(nil), schema.InputSchema.Required...),
		})
	}

	for _, e := range pending {
		r.entries[e.Identifier] = e
		r.order = append(r.order, e.Identifier)
	}
	logging.Info("Registry", "Registered %d tools under namespace %s", len(pending), namespace)
	return nil
}

func collectTools(group Group) (tools []Tool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return group.Tools(), nil
}

// Seal ends registration.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Resolve looks up a registered identifier.
func (r *Registry) Resolve(identifier string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[identifier]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, api.NewToolNotFoundError(identifier)
	}
	return *e, nil
}

// Call resolves identifier and invokes its handler exactly once. Unknown
// identifiers return a tool_not_found error and missing required parameters
// an invalid_argument error, without invoking anything.
func (r *Registry) Call(ctx context.Context, identifier string, args Arguments) (map[string]any, error) {
	entry, err := r.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	return invoke(ctx, entry, args)
}

func invoke(ctx context.Context, entry Entry, args Arguments) (payload map[string]any, err error) {
	if args == nil {
		args = Arguments{}
	}
	if key, missing := args.missing(entry.required); missing {
		return nil, api.NewInvalidArgumentError("parameter %q is required", key)
	}

	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Registry", fmt.Errorf("panic: %v", rec), "Tool %s panicked\n%s", entry.Identifier, debug.Stack())
			payload, err = nil, api.NewError(api.KindInternal, fmt.Sprintf("tool %s failed unexpectedly", entry.Identifier))
		}
	}()
	payload, err = entry.Tool.Handler(ctx, args)
	if err == nil && payload == nil {
		payload = map[string]any{}
	}
	return payload, err
}

// Entries returns the registered tools in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entries[id])
	}
	return out
}

// Identifiers returns the registered identifiers, sorted.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	return ids
}

// Namespaces returns the distinct namespaces in registration order.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	seen := make(map[string]bool)
	for _, id := range r.order {
		ns := r.entries[id].Namespace
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
