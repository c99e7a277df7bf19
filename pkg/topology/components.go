package topology

import (
	"sort"

	"github.com/philipparndt/stlcheck/pkg/mesh"
)

// Component is a maximal set of faces connected through manifold edges
type Component struct {
	Index       int
	Faces       []int // ascending
	NumVertices int
}

// NumFaces returns the number of faces in the component
func (c *Component) NumFaces() int {
	return len(c.Faces)
}

// SplitComponents partitions the faces of m into connected components.
//
// Components are numbered in order of their lowest face index and traversal
// visits neighbours in adjacency order, so the result only depends on the
// input. A face without manifold neighbours is its own component. When the
// graph has no links at all, faces are grouped by shared vertices instead.
func SplitComponents(m *mesh.Model, g *Graph) []Component {
	if g.NumLinks() == 0 && len(m.Faces) > 1 {
		return splitByVertices(m)
	}

	visited := make([]bool, len(m.Faces))
	var components []Component
	var queue []int

	for start := range m.Faces {
		if visited[start] {
			continue
		}

		visited[start] = true
		queue = append(queue[:0], start)
		var faces []int

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			faces = append(faces, current)

			for _, nbr := range g.Neighbors(current) {
				if visited[nbr] {
					continue
				}
				visited[nbr] = true
				queue = append(queue, nbr)
			}
		}

		sort.Ints(faces)
		components = append(components, newComponent(m, len(components), faces))
	}

	return components
}

// splitByVertices groups faces that share a vertex index, directly or through
// a chain of faces. Faces are scanned in index order, so components come out
// ordered by their lowest face and each face list is ascending.
func splitByVertices(m *mesh.Model) []Component {
	parent := make([]int, len(m.Vertices))
	for i := range parent {
		parent[i] = i
	}
	for _, face := range m.Faces {
		union(parent, face[0], face[1])
		union(parent, face[0], face[2])
	}

	byRoot := make(map[int]int)
	var groups [][]int
	for fi, face := range m.Faces {
		root := find(parent, face[0])
		gi, ok := byRoot[root]
		if !ok {
			gi = len(groups)
			byRoot[root] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], fi)
	}

	components := make([]Component, len(groups))
	for i, faces := range groups {
		components[i] = newComponent(m, i, faces)
	}
	return components
}

// find returns the root of v, halving the path on the way
func find(parent []int, v int) int {
	for parent[v] != v {
		parent[v] = parent[parent[v]]
		v = parent[v]
	}
	return v
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra == rb {
		return
	}
	if ra < rb {
		parent[rb] = ra
	} else {
		parent[ra] = rb
	}
}

func newComponent(m *mesh.Model, index int, faces []int) Component {
	return Component{
		Index:       index,
		Faces:       faces,
		NumVertices: countVertices(m, faces),
	}
}

func countVertices(m *mesh.Model, faces []int) int {
	seen := make(map[int]struct{}, len(faces))
	for _, fi := range faces {
		for _, v := range m.Faces[fi] {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
