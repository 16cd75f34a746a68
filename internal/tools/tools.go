// Package tools holds what the search, get and citation groups share: the
// API they call and helpers that shape their payloads.
package tools

import (
	"context"
	"net/url"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
)

// Result limits shared by collection tools.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// API is the subset of the CourtListener client used by tool handlers.
type API interface {
	Get(ctx context.Context, path string, query url.Values) (map[string]any, error)
	PostForm(ctx context.Context, path string, form url.Values) (any, error)
}

// Limit reads the "limit" argument, defaulting to DefaultLimit and bounded
// to [1, MaxLimit].
func Limit(args registry.Arguments) (int, error) {
	limit, err := args.Int("limit", DefaultLimit)
	if err != nil {
		return 0, err
	}
	if limit < 1 || limit > MaxLimit {
		return 0, api.NewInvalidArgumentError("parameter \"limit\" must be between 1 and %d", MaxLimit)
	}
	return limit, nil
}

// Collection builds the payload of a list result. count is the total number
// of matches reported by the API, or the number of items when it did not
// report one.
func Collection(items []any, count any, limit int) map[string]any {
	if items == nil {
		items = []any{}
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if count == nil {
		count = len(items)
	}
	return map[string]any{
		"count":    count,
		"returned": len(items),
		"results":  items,
	}
}

// Page extracts the results and count of a paginated API response.
func Page(resp map[string]any) ([]any, any) {
	items, _ := resp["results"].([]any)
	return items, resp["count"]
}

// CopyStrings copies the listed string arguments that are set into query.
func CopyStrings(args registry.Arguments, query url.Values, keys ...string) {
	for _, key := range keys {
		if v, ok := args.String(key); ok {
			query.Set(key, v)
		}
	}
}
