package registry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTool returns a tool whose handler counts its invocations and
// echoes the tool name.
func countingTool(name string, calls *int32) Tool {
	return Tool{
		Name:        name,
		Description: "test tool " + name,
		Handler: func(ctx context.Context, args Arguments) (map[string]any, error) {
			atomic.AddInt32(calls, 1)
			return map[string]any{"tool": name, "args": len(args)}, nil
		},
	}
}

type panickingGroup struct{}

func (panickingGroup) Tools() []Tool { panic("broken group") }

func TestRegisterAll_PrefixesIdentifiers(t *testing.T) {
	var calls int32
	r := New()
	err := r.RegisterAll([]Namespace{
		{Name: "search", Group: Tools{countingTool("opinions", &calls), countingTool("dockets", &calls)}},
		{Name: "get", Group: Tools{countingTool("opinion", &calls)}},
		{Name: "citation", Group: Tools{countingTool("lookup", &calls)}},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"citation_lookup", "get_opinion", "search_dockets", "search_opinions"}, r.Identifiers())
	assert.Equal(t, []string{"search", "get", "citation"}, r.Namespaces())

	entries := r.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "search_opinions", entries[0].Identifier)
	assert.Equal(t, "opinions", entries[0].LocalName)
	assert.Equal(t, "search_opinions", entries[0].Schema().Name)
}

func TestCall_DispatchesExactlyOnce(t *testing.T) {
	var searchCalls, getCalls int32
	r := New()
	require.NoError(t, r.RegisterAll([]Namespace{
		{Name: "search", Group: Tools{countingTool("opinions", &searchCalls)}},
		{Name: "get", Group: Tools{countingTool("opinions", &getCalls)}},
	}))

	out, err := r.Call(context.Background(), "search_opinions", Arguments{"q": "Miranda"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"tool": "opinions", "args": 1}, out)
	assert.EqualValues(t, 1, atomic.LoadInt32(&searchCalls))
	assert.EqualValues(t, 0, atomic.LoadInt32(&getCalls))
}

func TestCall_UnknownIdentifier(t *testing.T) {
	var calls int32
	r := New()
	require.NoError(t, r.Register("search", Tools{countingTool("opinions", &calls)}))

	tests := []string{"search.nonexistent", "search_nonexistent", "opinions", ""}
	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			_, err := r.Call(context.Background(), id, nil)
			require.Error(t, err)
			assert.True(t, api.IsNotFound(err))
		})
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCall_OrderIndependent(t *testing.T) {
	var a, b int32
	forward := New()
	require.NoError(t, forward.RegisterAll([]Namespace{
		{Name: "search", Group: Tools{countingTool("info", &a)}},
		{Name: "get", Group: Tools{countingTool("info", &b)}},
	}))
	reverse := New()
	require.NoError(t, reverse.RegisterAll([]Namespace{
		{Name: "get", Group: Tools{countingTool("info", &b)}},
		{Name: "search", Group: Tools{countingTool("info", &a)}},
	}))

	for _, r := range []*Registry{forward, reverse} {
		_, err := r.Call(context.Background(), "search_info", nil)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&a))
	assert.EqualValues(t, 0, atomic.LoadInt32(&b))
	assert.Equal(t, forward.Identifiers(), reverse.Identifiers())
}

func TestRegisterAll_SameLocalNameInDifferentNamespaces(t *testing.T) {
	var calls int32
	r := New()
	err := r.RegisterAll([]Namespace{
		{Name: "search", Group: Tools{countingTool("info", &calls)}},
		{Name: "get", Group: Tools{countingTool("info", &calls)}},
		{Name: "citation", Group: Tools{countingTool("info", &calls)}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"citation_info", "get_info", "search_info"}, r.Identifiers())
}

func TestRegisterAll_CollisionFailsFast(t *testing.T) {
	var calls int32
	r := New()
	err := r.RegisterAll([]Namespace{
		{Name: "search", Group: Tools{countingTool("info", &calls)}},
		{Name: "search", Group: Tools{countingTool("other", &calls), countingTool("info", &calls)}},
		{Name: "citation", Group: Tools{countingTool("info", &calls)}},
	})
	require.Error(t, err)

	var regErr *RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.True(t, regErr.Collision)
	assert.Equal(t, "search_info", regErr.Identifier)
	assert.Contains(t, err.Error(), "search_info")
	assert.True(t, errors.Is(err, &api.Error{Kind: api.KindRegistration}))

	// The failing group is rejected whole and later groups are not attempted.
	assert.Equal(t, []string{"search_info"}, r.Identifiers())
}

func TestRegister_ReservedIdentifier(t *testing.T) {
	var calls int32
	r := New()
	require.NoError(t, r.Reserve("search_status", "root"))

	err := r.Register("search", Tools{countingTool("status", &calls)})
	require.Error(t, err)
	assert.True(t, IsRegistrationError(err))
	assert.Contains(t, err.Error(), "search_status")
	assert.Zero(t, r.Len())

	assert.Error(t, r.Reserve("search_status", "other"))
}

func TestRegister_MalformedGroups(t *testing.T) {
	var calls int32
	tests := []struct {
		name      string
		namespace string
		group     Group
	}{
		{"empty namespace", "", Tools{countingTool("a", &calls)}},
		{"namespace with separator", "se_arch", Tools{countingTool("a", &calls)}},
		{"upper-case namespace", "Search", Tools{countingTool("a", &calls)}},
		{"nil group", "search", nil},
		{"empty group", "search", Tools{}},
		{"empty tool name", "search", Tools{countingTool("", &calls)}},
		{"dotted tool name", "search", Tools{countingTool("a.b", &calls)}},
		{"nil handler", "search", Tools{{Name: "opinions"}}},
		{"duplicate in group", "search", Tools{countingTool("a", &calls), countingTool("a", &calls)}},
		{"group panics", "search", panickingGroup{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Register(tt.namespace, tt.group)
			require.Error(t, err)
			assert.True(t, IsRegistrationError(err))
			assert.Zero(t, r.Len())
		})
	}
}

func TestRegister_AfterSeal(t *testing.T) {
	var calls int32
	r := New()
	r.Seal()
	assert.True(t, r.Sealed())
	assert.Error(t, r.Register("search", Tools{countingTool("a", &calls)}))
	assert.Error(t, r.Reserve("status", "root"))
}

func TestCall_RequiredParameters(t *testing.T) {
	var calls int32
	tool := countingTool("opinions", &calls)
	tool.Options = []mcp.ToolOption{
		mcp.WithString("q", mcp.Required(), mcp.Description("Query")),
		mcp.WithNumber("limit", mcp.Description("Max results")),
	}
	r := New()
	require.NoError(t, r.Register("search", Tools{tool}))

	entry, err := r.Resolve("search_opinions")
	require.NoError(t, err)
	assert.Equal(t, []string{"q"}, entry.Required())

	for _, args := range []Arguments{nil, {"limit": 5.0}, {"q": "  "}} {
		_, err := r.Call(context.Background(), "search_opinions", args)
		assert.True(t, api.IsKind(err, api.KindInvalidArgument), "args %v", args)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))

	_, err = r.Call(context.Background(), "search_opinions", Arguments{"q": "x"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestCall_HandlerPanicBecomesInternalError(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("get", Tools{{
		Name: "opinion",
		Handler: func(ctx context.Context, args Arguments) (map[string]any, error) {
			panic("nil map")
		},
	}}))

	_, err := r.Call(context.Background(), "get_opinion", nil)
	require.Error(t, err)
	assert.Equal(t, api.KindInternal, api.KindOf(err))
}

func TestCall_Concurrent(t *testing.T) {
	var calls int32
	r := New()
	require.NoError(t, r.Register("search", Tools{countingTool("opinions", &calls)}))
	r.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Call(context.Background(), "search_opinions", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, atomic.LoadInt32(&calls))
}
