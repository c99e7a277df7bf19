package analysis

import (
	"github.com/philipparndt/stlcheck/pkg/mesh"
	"github.com/philipparndt/stlcheck/pkg/topology"
)

// Option configures a run
type Option func(*options)

type options struct {
	areaEpsilon float64
}

// WithAreaEpsilon overrides the degenerate-face area threshold
func WithAreaEpsilon(eps float64) Option {
	return func(o *options) {
		o.areaEpsilon = eps
	}
}

// Result carries the report together with the intermediate structures
type Result struct {
	Report      *Report
	Edges       *topology.EdgeTable
	Components  []topology.Component
	Orientation *topology.OrientationResult
}

// Run validates m and performs every check. The model is never modified.
// The only errors come from validation; once a model is accepted the run
// always produces a complete report.
func Run(m *mesh.Model, opts ...Option) (*Result, error) {
	o := options{areaEpsilon: topology.DefaultAreaEpsilon}
	for _, opt := range opts {
		opt(&o)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	edges := topology.IndexEdges(m)
	graph := topology.BuildAdjacency(m.NumFaces(), edges)
	components := topology.SplitComponents(m, graph)
	orientation := topology.CheckOrientation(m, graph, components)

	report := BuildReport(Findings{
		NumVertices:     m.NumVertices(),
		NumFaces:        m.NumFaces(),
		DegenerateFaces: topology.DegenerateFaces(m, o.areaEpsilon),
		NonManifold:     edges.NonManifold(),
		Boundary:        edges.Boundary(),
		Components:      components,
		Flipped:         orientation.Flipped,
		Failures:        orientation.Failed,
	})

	return &Result{
		Report:      report,
		Edges:       edges,
		Components:  components,
		Orientation: orientation,
	}, nil
}

// Analyze runs every check on m and returns the report
func Analyze(m *mesh.Model, opts ...Option) (*Report, error) {
	result, err := Run(m, opts...)
	if err != nil {
		return nil, err
	}
	return result.Report, nil
}
