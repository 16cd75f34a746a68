package search

import (
	"context"
	"net/url"
	"testing"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	path  string
	query url.Values
	resp  map[string]any
	err   error
	calls int
}

func (f *fakeAPI) Get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	f.calls++
	f.path = path
	f.query = query
	return f.resp, f.err
}

func (f *fakeAPI) PostForm(ctx context.Context, path string, form url.Values) (any, error) {
	panic("search tools never post")
}

func newRegistry(t *testing.T, client *fakeAPI) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Register(Namespace, Group(client)))
	return r
}

func TestGroup_ToolNames(t *testing.T) {
	r := newRegistry(t, &fakeAPI{})
	assert.Equal(t, []string{
		"search_audio",
		"search_dockets",
		"search_dockets_with_documents",
		"search_opinions",
		"search_people",
		"search_recap_documents",
	}, r.Identifiers())
}

func TestSearch_BuildsQueryPerType(t *testing.T) {
	tests := []struct {
		tool     string
		args     registry.Arguments
		wantType string
		wantKey  string
		wantVal  string
	}{
		{"search_opinions", registry.Arguments{"q": "Miranda", "court": "scotus", "filed_after": "1960-01-01"}, TypeOpinions, "filed_after", "1960-01-01"},
		{"search_dockets", registry.Arguments{"q": "patent", "court": "cafc"}, TypeDockets, "court", "cafc"},
		{"search_dockets_with_documents", registry.Arguments{"q": "copyright"}, TypeDocketsWithDocuments, "q", "copyright"},
		{"search_recap_documents", registry.Arguments{"q": "motion", "court": "nysd"}, TypeRECAPDocuments, "court", "nysd"},
		{"search_audio", registry.Arguments{"q": "argument", "argued_before": "2020-01-01"}, TypeOralArguments, "argued_before", "2020-01-01"},
		{"search_people", registry.Arguments{"q": "Roberts", "position_type": "jud"}, TypePeople, "position_type", "jud"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			client := &fakeAPI{resp: map[string]any{"count": 1.0, "results": []any{map[string]any{"id": 1.0}}}}
			r := newRegistry(t, client)

			out, err := r.Call(context.Background(), tt.tool, tt.args)
			require.NoError(t, err)

			assert.Equal(t, 1, client.calls)
			assert.Equal(t, "search/", client.path)
			assert.Equal(t, tt.wantType, client.query.Get("type"))
			assert.Equal(t, tt.wantVal, client.query.Get(tt.wantKey))
			assert.Equal(t, 1.0, out["count"])
		})
	}
}

func TestSearch_LimitTruncatesResults(t *testing.T) {
	client := &fakeAPI{resp: map[string]any{
		"count":   1234.0,
		"results": []any{"a", "b", "c", "d"},
	}}
	r := newRegistry(t, client)

	out, err := r.Call(context.Background(), "search_opinions", registry.Arguments{"q": "x", "limit": 2.0})
	require.NoError(t, err)

	assert.Equal(t, 1234.0, out["count"])
	assert.Equal(t, 2, out["returned"])
	assert.Equal(t, []any{"a", "b"}, out["results"])
}

func TestSearch_EmptyResponseStillHasCount(t *testing.T) {
	r := newRegistry(t, &fakeAPI{resp: map[string]any{}})

	out, err := r.Call(context.Background(), "search_people", registry.Arguments{"q": "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, out["count"])
	assert.Equal(t, []any{}, out["results"])
}

func TestSearch_Errors(t *testing.T) {
	client := &fakeAPI{err: api.NewRemoteTimeoutError("search/", nil)}
	r := newRegistry(t, client)

	_, err := r.Call(context.Background(), "search_audio", registry.Arguments{"q": "x"})
	assert.True(t, api.IsKind(err, api.KindRemoteTimeout))

	_, err = r.Call(context.Background(), "search_audio", registry.Arguments{"q": "x", "limit": 500.0})
	assert.True(t, api.IsKind(err, api.KindInvalidArgument))

	_, err = r.Call(context.Background(), "search_audio", registry.Arguments{})
	assert.True(t, api.IsKind(err, api.KindInvalidArgument))
	assert.Equal(t, 1, client.calls)
}
