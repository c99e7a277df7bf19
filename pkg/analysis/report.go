// Package analysis turns the topology checks into a printability report.
package analysis

// Severity ranks an issue
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// IssueType names the check that produced an issue
type IssueType string

const (
	IssueDegenerateFaces     IssueType = "degenerate_faces"
	IssueNonManifoldEdges    IssueType = "non_manifold_edges"
	IssueBoundaryEdges       IssueType = "boundary_edges"
	IssueComponents          IssueType = "components"
	IssueWatertight          IssueType = "watertight"
	IssueInconsistentNormals IssueType = "inconsistent_normals"
	IssueNormalCheckFailed   IssueType = "normal_check_failed"
)

// ComponentInfo summarises one connected component
type ComponentInfo struct {
	Index       int `json:"index"`
	NumFaces    int `json:"num_faces"`
	NumVertices int `json:"num_vertices"`
}

// Issue is a single finding
type Issue struct {
	Type       IssueType       `json:"type"`
	Severity   Severity        `json:"severity"`
	Count      int             `json:"count,omitempty"`
	Message    string          `json:"message"`
	Faces      []int           `json:"faces,omitempty"`
	Edges      [][2]int        `json:"edges,omitempty"`
	Components []ComponentInfo `json:"components,omitempty"`
}

// Summary holds the headline numbers of a report
type Summary struct {
	NumVertices   int  `json:"num_vertices"`
	NumFaces      int  `json:"num_faces"`
	IsWatertight  bool `json:"is_watertight"`
	NumComponents int  `json:"num_components"`
}

// Report is the complete result for one mesh. Issues keep the order in which
// the checks ran.
type Report struct {
	Summary Summary `json:"summary"`
	Issues  []Issue `json:"issues"`
}

// Issue returns the first issue of the given type
func (r *Report) Issue(t IssueType) (Issue, bool) {
	for _, issue := range r.Issues {
		if issue.Type == t {
			return issue, true
		}
	}
	return Issue{}, false
}

// MaxSeverity returns the highest severity among the issues
func (r *Report) MaxSeverity() Severity {
	worst := SeverityInfo
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			return SeverityError
		case SeverityWarning:
			worst = SeverityWarning
		}
	}
	return worst
}
