// Package mcp exposes the analytics engine to LLM clients over the Model
// Context Protocol. Tools mirror the HTTP API's read surface; ingestion stays
// on the HTTP/CLI side.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds *DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftStats", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftStats strength-training analytics. Query period summaries, muscle-group distributions, per-exercise statistics and personal records derived from imported workout logs. All weights are kilograms."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetPeriodSummary, Handler: h.getPeriodSummary},
		server.ServerTool{Tool: toolGetMuscleDistribution, Handler: h.getMuscleDistribution},
		server.ServerTool{Tool: toolGetExerciseStats, Handler: h.getExerciseStats},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolListUnconfigured, Handler: h.listUnconfigured},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	s.AddResources(
		server.ServerResource{Resource: resSettings, Handler: h.settingsResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  *DataSource
	log *slog.Logger
}

var resSettings = mcp.NewResource(
	"liftstats://settings",
	"Engine Settings",
	mcp.WithResourceDescription("Current aggregation settings: units, week start, warmup/drop-set policies, bodyweight handling"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) settingsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.ds.Settings(ctx))
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
