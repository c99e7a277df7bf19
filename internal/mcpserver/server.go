// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes mesh analysis tools via stdio transport.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/philipparndt/stlcheck/internal/history"
	"github.com/philipparndt/stlcheck/internal/logger"
	"github.com/philipparndt/stlcheck/pkg/analysis"
	"github.com/philipparndt/stlcheck/pkg/stl"
	"github.com/philipparndt/stlcheck/version"
)

// Server wraps the MCP server with the analysis tools.
type Server struct {
	mcp   *server.MCPServer
	store *history.Store
}

// New creates a new MCP server with all tools registered. store may be nil.
func New(store *history.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"stlcheck",
		version.GetVersion(),
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("analyze_mesh",
		mcp.WithDescription("Analyze an STL file for printability defects: degenerate faces, "+
			"non-manifold and boundary edges, disconnected components, watertightness "+
			"and inconsistent face winding."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to an ASCII or binary STL file")),
		mcp.WithString("format", mcp.Description("Output format: json (default) or text")),
	), s.analyzeMesh)

	s.mcp.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Fetch a previously stored analysis report by the SHA-256 checksum of the file."),
		mcp.WithString("checksum", mcp.Required(), mcp.Description("Hex-encoded SHA-256 of the analyzed file")),
	), s.getReport)

	s.mcp.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("List stored analysis reports, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of entries (default 50)")),
	), s.listReports)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// jsonResult renders v as an indented JSON text result, or as a tool error
// when v cannot be encoded.
func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
	}
	return mcp.NewToolResultText(string(out))
}

type analyzeResult struct {
	Checksum string           `json:"checksum"`
	File     string           `json:"file"`
	Report   *analysis.Report `json:"report"`
}

func (s *Server) analyzeMesh(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := req.GetString("format", "json")
	if format != "json" && format != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("read %s: %v", path, err)), nil
	}
	soup, err := stl.Decode(bytes.NewReader(data))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := analysis.Analyze(soup.Mesh())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	checksum := history.Checksum(data)
	if s.store != nil {
		if err := s.store.Save(checksum, filepath.Base(path), report); err != nil {
			logger.Warn("save report failed", zap.String("checksum", checksum), zap.Error(err))
		}
	}

	if format == "text" {
		var buf strings.Builder
		if err := analysis.WriteText(&buf, report, path); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(buf.String()), nil
	}

	return jsonResult(analyzeResult{Checksum: checksum, File: path, Report: report}), nil
}

func (s *Server) getReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	checksum, err := req.RequireString("checksum")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.store == nil {
		return mcp.NewToolResultError("report history is disabled"), nil
	}

	entry, err := s.store.Get(checksum)
	if errors.Is(err, history.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no report for %s", checksum)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entry), nil
}

func (s *Server) listReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("report history is disabled"), nil
	}
	entries, err := s.store.List(req.GetInt("limit", 50))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no reports stored"), nil
	}
	return jsonResult(entries), nil
}
