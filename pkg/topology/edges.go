package topology

import (
	"github.com/philipparndt/stlcheck/pkg/mesh"
)

// Edge is an undirected edge stored with the smaller vertex index first
type Edge [2]int

// NewEdge returns the canonical form of the edge between a and b
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// IsSelf reports whether both endpoints are the same vertex, which only
// happens for faces with a repeated index
func (e Edge) IsSelf() bool {
	return e[0] == e[1]
}

// EdgeKind classifies an edge by how many faces use it
type EdgeKind int

const (
	// KindDegenerate marks self edges; they have no meaningful classification.
	KindDegenerate EdgeKind = iota
	KindBoundary
	KindManifold
	KindNonManifold
)

func (k EdgeKind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindManifold:
		return "manifold"
	case KindNonManifold:
		return "non-manifold"
	default:
		return "degenerate"
	}
}

// EdgeRecord lists the faces incident to one edge in the order they were found
type EdgeRecord struct {
	Edge  Edge
	Faces []int
}

// Count returns how many face sides use the edge
func (r *EdgeRecord) Count() int {
	return len(r.Faces)
}

// Kind classifies the edge
func (r *EdgeRecord) Kind() EdgeKind {
	switch {
	case r.Edge.IsSelf():
		return KindDegenerate
	case len(r.Faces) == 1:
		return KindBoundary
	case len(r.Faces) == 2:
		return KindManifold
	default:
		return KindNonManifold
	}
}

// EdgeTable holds every unique edge of a mesh in discovery order
type EdgeTable struct {
	Records []EdgeRecord
	index   map[Edge]int
}

// IndexEdges collects the three edges of every face of m. Edges are kept in
// the order they are first seen: by face, then a→b, b→c, c→a.
func IndexEdges(m *mesh.Model) *EdgeTable {
	t := &EdgeTable{
		Records: make([]EdgeRecord, 0, len(m.Faces)*3/2+1),
		index:   make(map[Edge]int, len(m.Faces)*3/2+1),
	}

	for fi, face := range m.Faces {
		for _, de := range face.Edges() {
			e := NewEdge(de[0], de[1])
			ri, ok := t.index[e]
			if !ok {
				ri = len(t.Records)
				t.index[e] = ri
				t.Records = append(t.Records, EdgeRecord{Edge: e})
			}
			t.Records[ri].Faces = append(t.Records[ri].Faces, fi)
		}
	}

	return t
}

// Len returns the number of unique edges
func (t *EdgeTable) Len() int {
	return len(t.Records)
}

// Lookup returns the record for e
func (t *EdgeTable) Lookup(e Edge) (*EdgeRecord, bool) {
	ri, ok := t.index[e]
	if !ok {
		return nil, false
	}
	return &t.Records[ri], true
}

// Edges returns the edges of the given kind in discovery order
func (t *EdgeTable) Edges(kind EdgeKind) []Edge {
	var edges []Edge
	for i := range t.Records {
		if t.Records[i].Kind() == kind {
			edges = append(edges, t.Records[i].Edge)
		}
	}
	return edges
}

// Boundary returns the edges used by exactly one face
func (t *EdgeTable) Boundary() []Edge {
	return t.Edges(KindBoundary)
}

// NonManifold returns the edges used by more than two faces
func (t *EdgeTable) NonManifold() []Edge {
	return t.Edges(KindNonManifold)
}

// CountByKind tallies the table by edge kind
func (t *EdgeTable) CountByKind() map[EdgeKind]int {
	counts := make(map[EdgeKind]int, 4)
	for i := range t.Records {
		counts[t.Records[i].Kind()]++
	}
	return counts
}

// IsClosed reports whether every non-degenerate edge is shared by exactly two faces
func (t *EdgeTable) IsClosed() bool {
	for i := range t.Records {
		switch t.Records[i].Kind() {
		case KindBoundary, KindNonManifold:
			return false
		}
	}
	return true
}
