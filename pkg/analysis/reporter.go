package analysis

import (
	"fmt"

	"github.com/philipparndt/stlcheck/pkg/topology"
)

// Findings are the raw outputs of the individual checks
type Findings struct {
	NumVertices     int
	NumFaces        int
	DegenerateFaces []int
	NonManifold     []topology.Edge
	Boundary        []topology.Edge
	Components      []topology.Component
	Flipped         []int
	Failures        []topology.ComponentFailure
}

// BuildReport aggregates findings into a report. It emits at most one issue
// per check, always in the same order, and always emits the watertight issue.
func BuildReport(f Findings) *Report {
	watertight := len(f.Boundary) == 0 && len(f.NonManifold) == 0
	report := &Report{
		Summary: Summary{
			NumVertices:   f.NumVertices,
			NumFaces:      f.NumFaces,
			IsWatertight:  watertight,
			NumComponents: len(f.Components),
		},
		Issues: make([]Issue, 0, 4),
	}

	if n := len(f.DegenerateFaces); n > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueDegenerateFaces,
			Severity: SeverityWarning,
			Count:    n,
			Faces:    f.DegenerateFaces,
			Message:  fmt.Sprintf("%d faces have near-zero area", n),
		})
	}

	if n := len(f.NonManifold); n > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueNonManifoldEdges,
			Severity: SeverityError,
			Count:    n,
			Edges:    edgePairs(f.NonManifold),
			Message:  fmt.Sprintf("%d edges are non-manifold (shared by > 2 faces)", n),
		})
	}

	if n := len(f.Boundary); n > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueBoundaryEdges,
			Severity: SeverityWarning,
			Count:    n,
			Edges:    edgePairs(f.Boundary),
			Message:  fmt.Sprintf("%d boundary edges detected (open surfaces / potential holes)", n),
		})
	}

	if n := len(f.Components); n > 1 {
		infos := make([]ComponentInfo, 0, n)
		for _, c := range f.Components {
			infos = append(infos, ComponentInfo{
				Index:       c.Index,
				NumFaces:    c.NumFaces(),
				NumVertices: c.NumVertices,
			})
		}
		report.Issues = append(report.Issues, Issue{
			Type:       IssueComponents,
			Severity:   SeverityInfo,
			Count:      n,
			Components: infos,
			Message:    fmt.Sprintf("Mesh has %d connected components", n),
		})
	}

	if watertight {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueWatertight,
			Severity: SeverityInfo,
			Message:  "Mesh is watertight",
		})
	} else {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueWatertight,
			Severity: SeverityWarning,
			Message:  "Mesh is NOT watertight (has holes and/or non-manifold edges)",
		})
	}

	if n := len(f.Flipped); n > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueInconsistentNormals,
			Severity: SeverityWarning,
			Count:    n,
			Faces:    f.Flipped,
			Message:  fmt.Sprintf("%d faces are wound inconsistently with their neighbors", n),
		})
	}

	if n := len(f.Failures); n > 0 {
		report.Issues = append(report.Issues, Issue{
			Type:     IssueNormalCheckFailed,
			Severity: SeverityInfo,
			Count:    n,
			Message:  fmt.Sprintf("Orientation check skipped for %d component(s): %v", n, f.Failures[0]),
		})
	}

	return report
}

func edgePairs(edges []topology.Edge) [][2]int {
	pairs := make([][2]int, len(edges))
	for i, e := range edges {
		pairs[i] = [2]int(e)
	}
	return pairs
}
