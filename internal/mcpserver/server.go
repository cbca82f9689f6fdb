// Package mcpserver serves a tool catalog over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leofalp/livesearch/providers/tool"
	"github.com/leofalp/livesearch/providers/tool/livesearch"
)

// Name is the implementation name announced to MCP clients.
const Name = "livesearch"

// Version is announced to MCP clients. Overridden at build time.
var Version = "dev"

// Server adapts a tool catalog to an MCP server.
type Server struct {
	srv    *mcp.Server
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New registers every tool in catalog, in catalog order.
func New(catalog *tool.Catalog, opts ...Option) *Server {
	s := &Server{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = mcp.NewServer(&mcp.Implementation{Name: Name, Version: Version}, nil)
	for _, t := range catalog.List() {
		s.register(t)
	}
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *mcp.Server { return s.srv }

// Run serves a single session on transport until ctx is done or the client
// disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("mcp server starting", "name", Name, "version", Version)
	err := s.srv.Run(ctx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.Info("mcp server stopped")
	return nil
}

func (s *Server) register(t tool.GenericTool) {
	info := t.Info()
	s.srv.AddTool(&mcp.Tool{
		Name:        info.Name,
		Description: info.Description,
		InputSchema: info.InputSchema,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := "{}"
		if len(req.Params.Arguments) > 0 {
			args = string(req.Params.Arguments)
		}

		output, err := t.Call(ctx, args)
		if err != nil {
			return s.errorResult(info.Name, err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: output}},
		}, nil
	})
}

// errorResult reports a failed call in-band. Search failures carry their
// envelope as the text payload; anything else carries its message.
func (s *Server) errorResult(name string, err error) *mcp.CallToolResult {
	var envErr *livesearch.EnvelopeError
	if errors.As(err, &envErr) {
		s.logger.Warn("tool call failed",
			"tool", name,
			"request_id", envErr.Envelope.RequestID,
			"error", err.Error(),
		)
		if data, marshalErr := json.Marshal(envErr.Envelope); marshalErr == nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
				IsError: true,
			}
		}
	} else {
		s.logger.Warn("tool call failed", "tool", name, "error", err.Error())
	}

	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}
