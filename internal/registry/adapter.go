package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Travis-Prall/court-listener-mcp/internal/registry"

type correlationKey struct{}

// CorrelationID returns the id assigned to the current invocation, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// ServerTools converts the registered entries into MCP server tools. The
// returned handlers never return a Go error: failures become error results
// carrying an {"error": {...}} payload.
func (r *Registry) ServerTools() []mcpserver.ServerTool {
	entries := r.Entries()
	tracer := otel.Tracer(instrumentationName)

	tools := make([]mcpserver.ServerTool, 0, len(entries))
	for _, entry := range entries {
		tools = append(tools, mcpserver.ServerTool{
			Tool:    entry.Schema(),
			Handler: newToolHandler(entry, tracer),
		})
	}
	return tools
}

func newToolHandler(entry Entry, tracer trace.Tracer) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		ctx = context.WithValue(ctx, correlationKey{}, id)
		ctx, span := tracer.Start(ctx, "tool "+entry.Identifier,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("mcp.tool", entry.Identifier),
				attribute.String("mcp.namespace", entry.Namespace),
				attribute.String("correlation_id", id),
			),
		)
		defer span.End()

		start := time.Now()
		payload, err := invoke(ctx, entry, Arguments(req.GetArguments()))
		if err != nil {
			kind := api.KindOf(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, string(kind))
			if kind == api.KindInternal {
				logging.Error("Registry", err, "Tool %s failed [%s]", entry.Identifier, id)
			} else {
				logging.Warn("Registry", "Tool %s returned %s [%s]: %v", entry.Identifier, kind, id, err)
			}
			return ErrorResult(err), nil
		}

		logging.Debug("Registry", "Tool %s completed in %s [%s]", entry.Identifier, time.Since(start).Round(time.Millisecond), id)
		return PayloadResult(payload), nil
	}
}

// PayloadResult wraps a structured payload, with its JSON text as the
// content block for clients that ignore structured content.
func PayloadResult(payload any) *mcp.CallToolResult {
	text, err := json.Marshal(payload)
	if err != nil {
		return ErrorResult(api.Wrap(api.KindInternal, err, "tool result is not serialisable"))
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(string(text))},
		StructuredContent: payload,
	}
}

// ErrorResult converts err into an error result. Only the kind, the
// caller-facing message and remote details are exposed.
func ErrorResult(err error) *mcp.CallToolResult {
	envelope := api.ErrorEnvelope{Error: api.PayloadFor(err)}
	text, _ := json.Marshal(envelope)
	return &mcp.CallToolResult{
		Content:           []mcp.Content{mcp.NewTextContent(string(text))},
		StructuredContent: envelope,
		IsError:           true,
	}
}
