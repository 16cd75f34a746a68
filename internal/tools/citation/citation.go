// Package citation provides the citation tool group: lookups against the
// CourtListener citation lookup endpoint and a light local parser.
package citation

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"
)

// Namespace is the prefix the group is mounted under.
const Namespace = "citation"

const endpoint = "citation-lookup/"

// maxParallelLookups bounds concurrent lookups issued by parse.
const maxParallelLookups = 4

// maxTextLen is the longest text accepted for lookup or parsing.
const maxTextLen = 64000

// reporterToken matches one word of a reporter abbreviation such as "U.S.",
// "F." or "2d".
const reporterToken = `(?:[A-Z][A-Za-z0-9.']*|\d[a-z]{1,2}\.?)`

var citationPattern = regexp.MustCompile(`\b(\d{1,4})\s+(` + reporterToken + `(?:\s+` + reporterToken + `){0,3})\s+(\d{1,5})\b`)

// Citation is a "volume reporter page" reference found in text.
type Citation struct {
	Volume   string `json:"volume"`
	Reporter string `json:"reporter"`
	Page     string `json:"page"`
	Text     string `json:"text"`
}

// Parse extracts citations from text in order of appearance, without
// duplicates. It recognises the common shape only and makes no attempt to
// validate reporters.
func Parse(text string) []Citation {
	var out []Citation
	seen := make(map[string]bool)
	for _, m := range citationPattern.FindAllStringSubmatch(text, -1) {
		reporter := strings.Join(strings.Fields(m[2]), " ")
		c := Citation{Volume: m[1], Reporter: reporter, Page: m[3]}
		c.Text = c.Volume + " " + c.Reporter + " " + c.Page
		if seen[c.Text] {
			continue
		}
		seen[c.Text] = true
		out = append(out, c)
	}
	return out
}

func (c Citation) payload() map[string]any {
	return map[string]any{
		"volume":   c.Volume,
		"reporter": c.Reporter,
		"page":     c.Page,
		"text":     c.Text,
	}
}

// Group builds the citation tools on top of client.
func Group(client tools.API) registry.Group {
	return registry.Tools{
		{
			Name:        "lookup",
			Description: "Look up every citation found in a block of text and return the matching cases",
			Options: []mcp.ToolOption{
				mcp.WithString("text", mcp.Required(), mcp.Description("Text containing one or more legal citations, e.g. '576 U.S. 644'")),
			},
			Handler: func(ctx context.Context, args registry.Arguments) (map[string]any, error) {
				text, err := requireText(args)
				if err != nil {
					return nil, err
				}
				return lookup(ctx, client, url.Values{"text": {text}})
			},
		},
		{
			Name:        "lookup_by_parts",
			Description: "Look up a single citation given its volume, reporter and page",
			Options: []mcp.ToolOption{
				mcp.WithString("volume", mcp.Required(), mcp.Description("Volume number, e.g. 576")),
				mcp.WithString("reporter", mcp.Required(), mcp.Description("Reporter abbreviation, e.g. U.S.")),
				mcp.WithString("page", mcp.Required(), mcp.Description("First page, e.g. 644")),
			},
			Handler: func(ctx context.Context, args registry.Arguments) (map[string]any, error) {
				form := url.Values{}
				for _, key := range []string{"volume", "reporter", "page"} {
					v, err := args.RequireString(key)
					if err != nil {
						return nil, err
					}
					form.Set(key, v)
				}
				return lookup(ctx, client, form)
			},
		},
		{
			Name:        "parse",
			Description: "Extract volume/reporter/page citations from text, optionally looking each one up",
			Options: []mcp.ToolOption{
				mcp.WithString("text", mcp.Required(), mcp.Description("Text to scan for citations")),
				mcp.WithBoolean("lookup", mcp.Description("Also look up each citation found (default false)")),
			},
			Handler: func(ctx context.Context, args registry.Arguments) (map[string]any, error) {
				text, err := requireText(args)
				if err != nil {
					return nil, err
				}
				withLookup, err := args.Bool("lookup", false)
				if err != nil {
					return nil, err
				}

				found := Parse(text)
				items := make([]any, len(found))
				for i, c := range found {
					items[i] = c.payload()
				}
				if withLookup && len(found) > 0 {
					lookupEach(ctx, client, found, items)
				}
				return tools.Collection(items, nil, 0), nil
			},
		},
	}
}

func requireText(args registry.Arguments) (string, error) {
	text, err := args.RequireString("text")
	if err != nil {
		return "", err
	}
	if len(text) > maxTextLen {
		return "", api.NewInvalidArgumentError("parameter \"text\" is longer than %d bytes", maxTextLen)
	}
	return text, nil
}

func lookup(ctx context.Context, client tools.API, form url.Values) (map[string]any, error) {
	resp, err := client.PostForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}
	items, _ := resp.([]any)
	return tools.Collection(items, nil, 0), nil
}

// lookupEach resolves every citation concurrently and stores the result
// under "lookup" in the matching item. A failed lookup is stored as an error
// envelope on its own item and does not stop the others.
func lookupEach(ctx context.Context, client tools.API, found []Citation, items []any) {
	var g errgroup.Group
	g.SetLimit(maxParallelLookups)

	for i, c := range found {
		item := items[i].(map[string]any)
		g.Go(func() error {
			resp, err := client.PostForm(ctx, endpoint, url.Values{
				"volume":   {c.Volume},
				"reporter": {c.Reporter},
				"page":     {c.Page},
			})
			if err != nil {
				logging.Warn("Tools", "Citation lookup for %q failed: %v", c.Text, err)
				item["lookup"] = api.ErrorEnvelope{Error: api.PayloadFor(err)}
				return nil
			}
			item["lookup"] = resp
			return nil
		})
	}
	_ = g.Wait()
}
