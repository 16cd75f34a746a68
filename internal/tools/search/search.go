// Package search provides the search tool group: full-text queries against
// the CourtListener search endpoint, one tool per result type.
package search

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// Namespace is the prefix the group is mounted under.
const Namespace = "search"

const endpoint = "search/"

// Result types understood by the search endpoint.
const (
	TypeOpinions             = "o"
	TypeDockets              = "d"
	TypeDocketsWithDocuments = "r"
	TypeRECAPDocuments       = "rd"
	TypeOralArguments        = "oa"
	TypePeople               = "p"
)

// kind describes one search tool.
type kind struct {
	name        string
	searchType  string
	description string
	// filters are passed through to the API when set.
	filters map[string]string
}

var kinds = []kind{
	{
		name:        "opinions",
		searchType:  TypeOpinions,
		description: "Search case law opinions by keywords, court and filing date",
		filters: map[string]string{
			"filed_after":  "Only opinions filed on or after this date (YYYY-MM-DD)",
			"filed_before": "Only opinions filed on or before this date (YYYY-MM-DD)",
			"case_name":    "Filter by case name",
			"judge":        "Filter by judge name",
		},
	},
	{
		name:        "dockets",
		searchType:  TypeDockets,
		description: "Search federal dockets (case records) by keywords and court",
		filters: map[string]string{
			"filed_after":   "Only dockets filed on or after this date (YYYY-MM-DD)",
			"filed_before":  "Only dockets filed on or before this date (YYYY-MM-DD)",
			"case_name":     "Filter by case name",
			"docket_number": "Filter by docket number",
		},
	},
	{
		name:        "dockets_with_documents",
		searchType:  TypeDocketsWithDocuments,
		description: "Search RECAP dockets together with their nested documents",
		filters: map[string]string{
			"filed_after":  "Only dockets filed on or after this date (YYYY-MM-DD)",
			"filed_before": "Only dockets filed on or before this date (YYYY-MM-DD)",
			"case_name":    "Filter by case name",
		},
	},
	{
		name:        "recap_documents",
		searchType:  TypeRECAPDocuments,
		description: "Search individual RECAP filings such as motions and orders",
		filters: map[string]string{
			"filed_after":  "Only documents filed on or after this date (YYYY-MM-DD)",
			"filed_before": "Only documents filed on or before this date (YYYY-MM-DD)",
			"description":  "Filter by document description",
		},
	},
	{
		name:        "audio",
		searchType:  TypeOralArguments,
		description: "Search oral argument audio recordings",
		filters: map[string]string{
			"argued_after":  "Only arguments heard on or after this date (YYYY-MM-DD)",
			"argued_before": "Only arguments heard on or before this date (YYYY-MM-DD)",
			"case_name":     "Filter by case name",
			"judge":         "Filter by judge name",
		},
	},
	{
		name:        "people",
		searchType:  TypePeople,
		description: "Search judges and other people in the judicial database",
		filters: map[string]string{
			"position_type":         "Filter by position type, e.g. jud for judge",
			"political_affiliation": "Filter by political affiliation",
			"school":                "Filter by school attended",
		},
	},
}

// Group builds the search tools on top of client.
func Group(client tools.API) registry.Group {
	out := make(registry.Tools, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.tool(client))
	}
	return out
}

func (k kind) tool(client tools.API) registry.Tool {
	opts := []mcp.ToolOption{
		mcp.WithString("q", mcp.Required(), mcp.Description("Search query, supports CourtListener query syntax")),
		mcp.WithString("court", mcp.Description("Court identifier(s), space separated, e.g. scotus or 'ca9 cafc'")),
		mcp.WithString("order_by", mcp.Description("Sort order, e.g. 'score desc' or 'dateFiled desc'")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return (1-"+strconv.Itoa(tools.MaxLimit)+", default "+strconv.Itoa(tools.DefaultLimit)+")")),
	}
	filterKeys := make([]string, 0, len(k.filters))
	for _, key := range sortedKeys(k.filters) {
		opts = append(opts, mcp.WithString(key, mcp.Description(k.filters[key])))
		filterKeys = append(filterKeys, key)
	}

	return registry.Tool{
		Name:        k.name,
		Description: k.description,
		Options:     opts,
		Handler: func(ctx context.Context, args registry.Arguments) (map[string]any, error) {
			q, err := args.RequireString("q")
			if err != nil {
				return nil, err
			}
			limit, err := tools.Limit(args)
			if err != nil {
				return nil, err
			}

			query := url.Values{"q": {q}, "type": {k.searchType}}
			tools.CopyStrings(args, query, "court", "order_by")
			tools.CopyStrings(args, query, filterKeys...)

			logging.Debug("Tools", "Searching %s: %s", k.name, query.Encode())
			resp, err := client.Get(ctx, endpoint, query)
			if err != nil {
				return nil, err
			}
			items, count := tools.Page(resp)
			return tools.Collection(items, count, limit), nil
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
