package courtlistener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/credentials"
	"github.com/Travis-Prall/court-listener-mcp/internal/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, creds credentials.Source, timeout time.Duration) (*Client, context.Context) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	lifespan := httpclient.NewLifespan(timeout)
	require.NoError(t, lifespan.Open())
	t.Cleanup(func() { _ = lifespan.Close() })

	client, err := NewClient(srv.URL+"/api/rest/v4", httpclient.NewProvider(timeout), creds)
	require.NoError(t, err)
	return client, httpclient.WithScope(context.Background(), lifespan)
}

func TestClient_GetSendsTokenAndQuery(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count": 1, "results": [{"id": 7}]}`))
	}, credentials.Static("secret"), 5*time.Second)

	out, err := client.Get(ctx, "search/", url.Values{"q": {"Miranda"}})
	require.NoError(t, err)

	assert.Equal(t, "/api/rest/v4/search/", gotPath)
	assert.Equal(t, "Token secret", gotAuth)
	assert.Equal(t, "Miranda", gotQuery)
	assert.EqualValues(t, 1, out["count"])
}

func TestClient_MissingCredentialNeverCallsRemote(t *testing.T) {
	called := false
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, credentials.Static(""), 5*time.Second)

	_, err := client.Get(ctx, "courts/", nil)
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindAuthenticationConfig))
	assert.False(t, called)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{\"detail\":\n  \"No Opinion matches the given query.\"}"))
	}, credentials.Static("k"), 5*time.Second)

	_, err := client.Get(ctx, "opinions/1/", nil)
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, api.KindRemoteUnavailable, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Detail, "No Opinion matches")
	assert.NotContains(t, apiErr.Detail, "\n")
}

func TestClient_Timeout(t *testing.T) {
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, credentials.Static("k"), 50*time.Millisecond)

	_, err := client.Get(ctx, "search/", nil)
	require.Error(t, err)
	assert.True(t, api.IsKind(err, api.KindRemoteTimeout), "got %v", err)
}

func TestClient_PostForm(t *testing.T) {
	var gotText, gotContentType string
	client, ctx := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotText = r.PostForm.Get("text")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`[{"citation": "576 U.S. 644", "status": 200}]`))
	}, credentials.Static("k"), 5*time.Second)

	out, err := client.PostForm(ctx, "citation-lookup/", url.Values{"text": {"576 U.S. 644"}})
	require.NoError(t, err)

	assert.Equal(t, "576 U.S. 644", gotText)
	assert.True(t, strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded"))
	list, ok := out.([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestClient_WorksWithoutScope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1}`))
	}, credentials.Static("k"), 5*time.Second)

	out, err := client.Get(context.Background(), "courts/scotus/", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out["id"])
}

func TestNewClient_NormalizesBaseURL(t *testing.T) {
	client, err := NewClient("https://example.test/api/rest/v4", httpclient.NewProvider(time.Second), credentials.Static("k"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/api/rest/v4/", client.BaseURL())
	assert.Equal(t, "https://example.test/api/rest/v4/opinions/3/", client.resolve("/opinions/3/").String())

	_, err = NewClient("api/rest/v4", httpclient.NewProvider(time.Second), credentials.Static("k"))
	assert.Error(t, err)
}
