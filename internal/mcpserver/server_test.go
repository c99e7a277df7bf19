package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/philipparndt/stlcheck/internal/history"
	"github.com/philipparndt/stlcheck/internal/testmesh"
	"github.com/philipparndt/stlcheck/pkg/mesh"
	"github.com/philipparndt/stlcheck/pkg/stl"
)

func testServer(t *testing.T, withHistory bool) *Server {
	t.Helper()
	if !withHistory {
		return New(nil)
	}
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func writeSTL(t *testing.T, name string, m *mesh.Model) (string, []byte) {
	t.Helper()
	model := stl.NewModel(name)
	for _, tri := range m.Triangles() {
		model.AddTriangle(tri)
	}
	var buf bytes.Buffer
	if err := stl.Write(&buf, model); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name+".stl")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, buf.Bytes()
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "analyze_mesh":
		result, err = srv.analyzeMesh(ctx, req)
	case "get_report":
		result, err = srv.getReport(ctx, req)
	case "list_reports":
		result, err = srv.listReports(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAnalyzeMeshJSON(t *testing.T) {
	srv := testServer(t, false)
	path, data := writeSTL(t, "open", testmesh.OpenCube())

	r := callTool(t, srv, "analyze_mesh", map[string]interface{}{"path": path})
	if r.IsError {
		t.Fatalf("analyze failed: %s", resultText(r))
	}

	var out analyzeResult
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Checksum != history.Checksum(data) {
		t.Errorf("checksum = %s", out.Checksum)
	}
	if out.Report.Summary.IsWatertight {
		t.Error("open cube reported as watertight")
	}
	if out.Report.Summary.NumFaces != 11 {
		t.Errorf("faces = %d, want 11", out.Report.Summary.NumFaces)
	}
}

func TestAnalyzeMeshText(t *testing.T) {
	srv := testServer(t, false)
	path, _ := writeSTL(t, "cube", testmesh.Cube())

	r := callTool(t, srv, "analyze_mesh", map[string]interface{}{"path": path, "format": "text"})
	text := resultText(r)
	if r.IsError || !strings.Contains(text, "Mesh is watertight") {
		t.Errorf("unexpected text output: %q", text)
	}
}

func TestAnalyzeMeshBadFormat(t *testing.T) {
	srv := testServer(t, false)
	path, _ := writeSTL(t, "cube", testmesh.Cube())

	r := callTool(t, srv, "analyze_mesh", map[string]interface{}{"path": path, "format": "xml"})
	if !r.IsError {
		t.Error("expected error for unknown format")
	}
}

func TestAnalyzeMeshMissingFile(t *testing.T) {
	srv := testServer(t, false)

	r := callTool(t, srv, "analyze_mesh", map[string]interface{}{"path": filepath.Join(t.TempDir(), "nope.stl")})
	if !r.IsError {
		t.Error("expected error for missing file")
	}
}

func TestAnalyzeMeshRequiresPath(t *testing.T) {
	srv := testServer(t, false)

	r := callTool(t, srv, "analyze_mesh", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error without path")
	}
}

func TestGetReportAfterAnalyze(t *testing.T) {
	srv := testServer(t, true)
	path, data := writeSTL(t, "two", testmesh.TwoCubes())

	if r := callTool(t, srv, "analyze_mesh", map[string]interface{}{"path": path}); r.IsError {
		t.Fatalf("analyze failed: %s", resultText(r))
	}

	r := callTool(t, srv, "get_report", map[string]interface{}{"checksum": history.Checksum(data)})
	if r.IsError {
		t.Fatalf("get_report failed: %s", resultText(r))
	}
	var entry history.Entry
	if err := json.Unmarshal([]byte(resultText(r)), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Name != "two.stl" || entry.Report.Summary.NumComponents != 2 {
		t.Errorf("unexpected entry: %+v", entry)
	}

	r = callTool(t, srv, "list_reports", map[string]interface{}{"limit": 5})
	if r.IsError || !strings.Contains(resultText(r), history.Checksum(data)) {
		t.Errorf("list_reports = %q", resultText(r))
	}
}

func TestGetReportMissing(t *testing.T) {
	srv := testServer(t, true)

	r := callTool(t, srv, "get_report", map[string]interface{}{"checksum": "deadbeef"})
	if !r.IsError {
		t.Error("expected error for unknown checksum")
	}
}

func TestHistoryDisabled(t *testing.T) {
	srv := testServer(t, false)

	if r := callTool(t, srv, "get_report", map[string]interface{}{"checksum": "x"}); !r.IsError {
		t.Error("expected get_report error with history disabled")
	}
	if r := callTool(t, srv, "list_reports", map[string]interface{}{}); !r.IsError {
		t.Error("expected list_reports error with history disabled")
	}
}

func TestJSONResultEncodeFailure(t *testing.T) {
	r := jsonResult(map[string]float64{"area": math.Inf(1)})
	if !r.IsError {
		t.Fatalf("expected error result, got %q", resultText(r))
	}
	if !strings.Contains(resultText(r), "encode result") {
		t.Errorf("unexpected error text %q", resultText(r))
	}
}

func TestJSONResultText(t *testing.T) {
	r := jsonResult(map[string]int{"faces": 12})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if resultText(r) != "{\n  \"faces\": 12\n}" {
		t.Errorf("unexpected text %q", resultText(r))
	}
}
