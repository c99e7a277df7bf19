package topology

// facePair is an ordered pair of face indices
type facePair [2]int

// Graph links faces that share a manifold edge. It is built once and only read
// afterwards.
type Graph struct {
	neighbors [][]int
	shared    map[facePair]Edge
	links     int
}

// BuildAdjacency links the two faces of every edge whose count is exactly two.
// Neighbour lists follow edge discovery order. An edge whose two incidences
// belong to the same face links nothing.
func BuildAdjacency(numFaces int, edges *EdgeTable) *Graph {
	g := &Graph{
		neighbors: make([][]int, numFaces),
		shared:    make(map[facePair]Edge),
	}

	for i := range edges.Records {
		rec := &edges.Records[i]
		if rec.Kind() != KindManifold {
			continue
		}
		f1, f2 := rec.Faces[0], rec.Faces[1]
		if f1 == f2 {
			continue
		}
		g.link(f1, f2, rec.Edge)
	}

	return g
}

func (g *Graph) link(f1, f2 int, e Edge) {
	g.neighbors[f1] = append(g.neighbors[f1], f2)
	g.neighbors[f2] = append(g.neighbors[f2], f1)
	// a pair sharing several edges keeps the first one
	if _, ok := g.shared[facePair{f1, f2}]; !ok {
		g.shared[facePair{f1, f2}] = e
		g.shared[facePair{f2, f1}] = e
	}
	g.links++
}

// NumFaces returns the number of faces the graph was built for
func (g *Graph) NumFaces() int {
	return len(g.neighbors)
}

// NumLinks returns the number of manifold edges that link two faces
func (g *Graph) NumLinks() int {
	return g.links
}

// Neighbors returns the faces adjacent to f. The slice must not be modified.
// A neighbour can appear more than once when two faces share several edges.
func (g *Graph) Neighbors(f int) []int {
	return g.neighbors[f]
}

// SharedEdge returns the edge linking f1 and f2
func (g *Graph) SharedEdge(f1, f2 int) (Edge, bool) {
	e, ok := g.shared[facePair{f1, f2}]
	return e, ok
}
