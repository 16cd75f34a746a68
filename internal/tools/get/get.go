// Package get provides the get tool group: retrieval of single records by
// their CourtListener identifier.
package get

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/registry"
	"github.com/Travis-Prall/court-listener-mcp/internal/tools"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// Namespace is the prefix the group is mounted under.
const Namespace = "get"

var courtIDPattern = regexp.MustCompile(`^[a-z0-9]+$`)

type resource struct {
	name        string
	endpoint    string
	param       string
	description string
	// numeric ids must be positive integers; court ids are short slugs.
	numeric bool
}

var resources = []resource{
	{"opinion", "opinions", "opinion_id", "Get a single opinion, including its text, by ID", true},
	{"cluster", "clusters", "cluster_id", "Get an opinion cluster (a decided case and its opinions) by ID", true},
	{"docket", "dockets", "docket_id", "Get a docket with its case metadata by ID", true},
	{"audio", "audio", "audio_id", "Get an oral argument recording by ID", true},
	{"person", "people", "person_id", "Get a judge or other person by ID", true},
	{"court", "courts", "court_id", "Get a court by its identifier, e.g. scotus or ca9", false},
}

// Group builds the get tools on top of client.
func Group(client tools.API) registry.Group {
	out := make(registry.Tools, 0, len(resources))
	for _, res := range resources {
		out = append(out, res.tool(client))
	}
	return out
}

func (res resource) tool(client tools.API) registry.Tool {
	var idOption mcp.ToolOption
	if res.numeric {
		idOption = mcp.WithNumber(res.param, mcp.Required(), mcp.Description("Numeric "+res.name+" ID"))
	} else {
		idOption = mcp.WithString(res.param, mcp.Required(), mcp.Description("Court identifier"))
	}

	return registry.Tool{
		Name:        res.name,
		Description: res.description,
		Options:     []mcp.ToolOption{idOption},
		Handler: func(ctx context.Context, args registry.Arguments) (map[string]any, error) {
			id, err := res.id(args)
			if err != nil {
				return nil, err
			}
			path := fmt.Sprintf("%s/%s/", res.endpoint, id)
			logging.Debug("Tools", "Fetching %s", path)
			return client.Get(ctx, path, nil)
		},
	}
}

func (res resource) id(args registry.Arguments) (string, error) {
	if res.numeric {
		n, err := args.Int(res.param, 0)
		if err != nil {
			return "", err
		}
		if n < 1 {
			return "", api.NewInvalidArgumentError("parameter %q must be a positive integer", res.param)
		}
		return strconv.Itoa(n), nil
	}

	s, err := args.RequireString(res.param)
	if err != nil {
		return "", err
	}
	if !courtIDPattern.MatchString(s) {
		return "", api.NewInvalidArgumentError("parameter %q must contain only lower-case letters and digits", res.param)
	}
	return s, nil
}
