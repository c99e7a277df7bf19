package topology

import (
	"fmt"
	"sort"

	"github.com/philipparndt/stlcheck/pkg/mesh"
)

// ComponentFailure records a component whose orientation could not be
// resolved because a shared edge was not found in a face's winding
type ComponentFailure struct {
	Component int
	Face      int
	Neighbor  int
	Edge      Edge
}

func (f ComponentFailure) Error() string {
	return fmt.Sprintf("component %d: edge %v not found once in windings of faces %d and %d",
		f.Component, f.Edge, f.Face, f.Neighbor)
}

// OrientationResult is the outcome of CheckOrientation
type OrientationResult struct {
	// Flipped lists, in ascending order, the faces whose winding disagrees
	// with the rest of their component.
	Flipped []int
	// Corrected is a copy of the faces with every Flipped face reversed.
	Corrected []mesh.Face
	// Failed lists the components that were abandoned.
	Failed []ComponentFailure
}

// CheckOrientation runs PropagateOrientation once per component and merges
// the results. The faces of m are never modified.
//
// Within a component the smaller side is reported: when more than half of
// the visited faces disagree with the seed, the seed's side is reported
// instead. Ties keep the seed.
func CheckOrientation(m *mesh.Model, g *Graph, components []Component) *OrientationResult {
	windings := m.CloneFaces()
	flipped := make([]bool, len(windings))
	visited := make([]bool, len(windings))
	result := &OrientationResult{}

	for ci := range components {
		comp := &components[ci]
		if err := propagate(windings, g, comp, visited, flipped); err != nil {
			// restore the component and drop its partial decisions
			for _, fi := range comp.Faces {
				windings[fi] = m.Faces[fi]
				flipped[fi] = false
			}
			err.Component = comp.Index
			result.Failed = append(result.Failed, *err)
			continue
		}

		var resolved, against int
		for _, fi := range comp.Faces {
			if visited[fi] {
				resolved++
				if flipped[fi] {
					against++
				}
			}
		}
		if 2*against > resolved {
			for _, fi := range comp.Faces {
				if visited[fi] {
					flipped[fi] = !flipped[fi]
				}
			}
		}
	}

	result.Corrected = m.CloneFaces()
	for fi, f := range flipped {
		if f {
			result.Flipped = append(result.Flipped, fi)
			result.Corrected[fi] = m.Faces[fi].Flipped()
		}
	}
	return result
}

// PropagateOrientation walks one component breadth-first from its seed and
// returns the faces whose winding had to be reversed to agree with the seed.
// windings is the working copy and is updated in place.
func PropagateOrientation(windings []mesh.Face, g *Graph, comp *Component) ([]int, error) {
	visited := make([]bool, len(windings))
	flipped := make([]bool, len(windings))
	if err := propagate(windings, g, comp, visited, flipped); err != nil {
		err.Component = comp.Index
		return nil, *err
	}

	var out []int
	for _, fi := range comp.Faces {
		if flipped[fi] {
			out = append(out, fi)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Seed returns the face a component's walk starts from: the lowest-indexed
// face with three distinct vertices, or the lowest-indexed face if none is
func Seed(windings []mesh.Face, comp *Component) int {
	for _, fi := range comp.Faces {
		if !windings[fi].HasRepeatedIndex() {
			return fi
		}
	}
	return comp.Faces[0]
}

func propagate(windings []mesh.Face, g *Graph, comp *Component, visited, flipped []bool) *ComponentFailure {
	if len(comp.Faces) == 0 {
		return nil
	}

	seed := Seed(windings, comp)
	visited[seed] = true
	queue := []int{seed}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, nbr := range g.Neighbors(current) {
			if visited[nbr] {
				continue
			}

			e, ok := g.SharedEdge(current, nbr)
			if !ok {
				return &ComponentFailure{Face: current, Neighbor: nbr}
			}
			cur, ok := traversal(windings[current], e)
			if !ok {
				return &ComponentFailure{Face: current, Neighbor: nbr, Edge: e}
			}
			other, ok := traversal(windings[nbr], e)
			if !ok {
				return &ComponentFailure{Face: current, Neighbor: nbr, Edge: e}
			}

			// consistent neighbours walk the shared edge in opposite directions
			if cur == other {
				windings[nbr] = windings[nbr].Flipped()
				flipped[nbr] = true
			}

			visited[nbr] = true
			queue = append(queue, nbr)
		}
	}

	return nil
}

// traversal reports whether the winding runs along e from e[0] to e[1]. ok is
// false unless the edge appears exactly once in the winding.
func traversal(f mesh.Face, e Edge) (forward bool, ok bool) {
	var fwd, back int
	for _, de := range f.Edges() {
		switch de {
		case [2]int{e[0], e[1]}:
			fwd++
		case [2]int{e[1], e[0]}:
			back++
		}
	}
	if fwd+back != 1 {
		return false, false
	}
	return fwd == 1, true
}
