// Package mcpserver exposes webfetch tools to a host agent over the Model
// Context Protocol. Tool failures become error-flagged text results, never
// protocol errors, so the agent always gets a readable message back.
package mcpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matthewmueller/webfetch"
	"github.com/matthewmueller/webfetch/internal/history"
)

const historyURI = "history://recent"

// Server wraps an MCP server serving webfetch tools over stdio.
type Server struct {
	log *slog.Logger
	mcp *server.MCPServer
}

// New registers the given tools and the recent-fetch history resource.
func New(log *slog.Logger, version string, tools []webfetch.Tool, hist *history.Log) *Server {
	s := server.NewMCPServer("webfetch", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	for _, tool := range tools {
		s.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), tool.Schema().JSON()),
			handler(log, tool),
		)
	}

	s.AddResource(
		mcp.NewResource(historyURI, "Recent fetches",
			mcp.WithResourceDescription("The most recent URLs fetched in this session, newest first."),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			buf, err := json.MarshalIndent(hist.Recent(), "", "  ")
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{mcp.TextResourceContents{
				URI:      historyURI,
				MIMEType: "application/json",
				Text:     string(buf),
			}}, nil
		},
	)

	return &Server{log: log, mcp: s}
}

// handler bridges a typed webfetch.Tool into an MCP tool handler.
func handler(log *slog.Logger, tool webfetch.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := tool.Run(ctx, args)
		if err != nil {
			log.Warn("mcp: tool failed", "tool", tool.Name(), "err", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(resultText(out)), nil
	}
}

// resultText unwraps string outputs from their JSON encoding; structured
// outputs stay as raw JSON.
func resultText(out json.RawMessage) string {
	var s string
	if err := json.Unmarshal(out, &s); err == nil {
		return s
	}
	return string(out)
}

// Listen serves MCP over the given streams until the context is canceled.
func (s *Server) Listen(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	s.log.Debug("mcp: serving over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}
