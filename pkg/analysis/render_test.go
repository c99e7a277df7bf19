package analysis

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/philipparndt/stlcheck/internal/testmesh"
)

func TestWriteText(t *testing.T) {
	report := mustAnalyze(t, testmesh.OpenCube())

	var buf bytes.Buffer
	if err := WriteText(&buf, report, "open.stl"); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"STL Analysis: open.stl\n======================\n",
		"Vertices:       8\n",
		"Faces:          11\n",
		"Watertight:     false\n",
		"Components:     1\n",
		"[WARNING] boundary_edges (count=3) -> 3 boundary edges detected (open surfaces / potential holes)\n",
		"[WARNING] watertight -> Mesh is NOT watertight (has holes and/or non-manifold edges)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteJSONShape(t *testing.T) {
	report := mustAnalyze(t, testmesh.OpenCube())

	var buf bytes.Buffer
	if err := WriteJSON(&buf, report); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	summary, ok := decoded["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected summary object, got %T", decoded["summary"])
	}
	for _, key := range []string{"num_vertices", "num_faces", "is_watertight", "num_components"} {
		if _, ok := summary[key]; !ok {
			t.Errorf("expected summary key %q", key)
		}
	}

	issues, ok := decoded["issues"].([]any)
	if !ok || len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", decoded["issues"])
	}
	watertight := issues[1].(map[string]any)
	if _, ok := watertight["count"]; ok {
		t.Error("expected watertight issue without count")
	}
	boundary := issues[0].(map[string]any)
	edges, ok := boundary["edges"].([]any)
	if !ok || len(edges) != 3 {
		t.Errorf("expected 3 edges, got %v", boundary["edges"])
	}
}

func TestFormatIssue(t *testing.T) {
	tests := []struct {
		issue    Issue
		expected string
	}{
		{
			Issue{Type: IssueWatertight, Severity: SeverityInfo, Message: "Mesh is watertight"},
			"[INFO] watertight -> Mesh is watertight",
		},
		{
			Issue{Type: IssueNonManifoldEdges, Severity: SeverityError, Count: 2, Message: "bad"},
			"[ERROR] non_manifold_edges (count=2) -> bad",
		},
	}

	for _, tt := range tests {
		if got := FormatIssue(tt.issue); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
