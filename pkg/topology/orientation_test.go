package topology

import (
	"reflect"
	"testing"

	"github.com/philipparndt/stlcheck/internal/testmesh"
	"github.com/philipparndt/stlcheck/pkg/mesh"
)

func checkOrientation(m *mesh.Model) *OrientationResult {
	g := BuildAdjacency(m.NumFaces(), IndexEdges(m))
	return CheckOrientation(m, g, SplitComponents(m, g))
}

func TestCheckOrientationConsistentCube(t *testing.T) {
	res := checkOrientation(testmesh.Cube())

	if len(res.Flipped) != 0 {
		t.Errorf("expected no flipped faces, got %v", res.Flipped)
	}
	if len(res.Failed) != 0 {
		t.Errorf("expected no failures, got %v", res.Failed)
	}
}

func TestCheckOrientationReversedFace(t *testing.T) {
	m := testmesh.ReversedCube(testmesh.TopFace)
	res := checkOrientation(m)

	if !reflect.DeepEqual(res.Flipped, []int{testmesh.TopFace}) {
		t.Fatalf("expected flipped [%d], got %v", testmesh.TopFace, res.Flipped)
	}

	again := checkOrientation(m.WithFaces(res.Corrected))
	if len(again.Flipped) != 0 {
		t.Errorf("expected no flips after correction, got %v", again.Flipped)
	}
}

func TestCheckOrientationReversedSeed(t *testing.T) {
	res := checkOrientation(testmesh.ReversedCube(0))

	if !reflect.DeepEqual(res.Flipped, []int{0}) {
		t.Errorf("expected flipped [0], got %v", res.Flipped)
	}
}

func TestCheckOrientationDoesNotModifyInput(t *testing.T) {
	m := testmesh.ReversedCube(5)
	before := m.CloneFaces()

	checkOrientation(m)

	if !reflect.DeepEqual(before, m.Faces) {
		t.Error("expected input faces to stay untouched")
	}
}

func TestCheckOrientationPerComponent(t *testing.T) {
	m := testmesh.TwoCubes()
	m.Faces[4] = m.Faces[4].Flipped()
	m.Faces[20] = m.Faces[20].Flipped()

	res := checkOrientation(m)

	if !reflect.DeepEqual(res.Flipped, []int{4, 20}) {
		t.Errorf("expected flipped [4 20], got %v", res.Flipped)
	}
}

func TestCheckOrientationIsolatedFaceStaysSilent(t *testing.T) {
	res := checkOrientation(testmesh.WithDegenerate())

	if len(res.Flipped) != 0 {
		t.Errorf("expected no flipped faces, got %v", res.Flipped)
	}
}

func TestPropagateOrientationStrip(t *testing.T) {
	m := testmesh.Strip(5)
	m.Faces[2] = m.Faces[2].Flipped()
	g := BuildAdjacency(m.NumFaces(), IndexEdges(m))
	comps := SplitComponents(m, g)

	windings := m.CloneFaces()
	flipped, err := PropagateOrientation(windings, g, &comps[0])
	if err != nil {
		t.Fatalf("PropagateOrientation failed: %v", err)
	}
	if !reflect.DeepEqual(flipped, []int{2}) {
		t.Errorf("expected flipped [2], got %v", flipped)
	}
	if windings[2] != testmesh.Strip(5).Faces[2] {
		t.Errorf("expected working copy to hold corrected winding, got %v", windings[2])
	}
}

func TestSeedSkipsRepeatedIndex(t *testing.T) {
	windings := []mesh.Face{{0, 0, 1}, {1, 2, 3}}
	comp := &Component{Faces: []int{0, 1}}

	if seed := Seed(windings, comp); seed != 1 {
		t.Errorf("expected seed 1, got %d", seed)
	}
	comp = &Component{Faces: []int{0}}
	if seed := Seed(windings, comp); seed != 0 {
		t.Errorf("expected fallback seed 0, got %d", seed)
	}
}

func corruptedGraph() *Graph {
	g := &Graph{
		neighbors: make([][]int, 2),
		shared:    make(map[facePair]Edge),
	}
	g.link(0, 1, Edge{7, 8})
	return g
}

func TestCheckOrientationFailureIsReported(t *testing.T) {
	m := testmesh.Strip(2)
	g := corruptedGraph()
	comps := SplitComponents(m, g)

	res := CheckOrientation(m, g, comps)

	if len(res.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %v", res.Failed)
	}
	if res.Failed[0].Edge != (Edge{7, 8}) || res.Failed[0].Component != 0 {
		t.Errorf("unexpected failure: %+v", res.Failed[0])
	}
	if len(res.Flipped) != 0 {
		t.Errorf("expected no flipped faces, got %v", res.Flipped)
	}
	if !reflect.DeepEqual(res.Corrected, m.Faces) {
		t.Errorf("expected corrected faces to equal input, got %v", res.Corrected)
	}
}

func TestCheckOrientationFailureKeepsOtherComponents(t *testing.T) {
	m := testmesh.TwoCubes()
	m.Faces[3] = m.Faces[3].Flipped()
	g := BuildAdjacency(m.NumFaces(), IndexEdges(m))
	comps := SplitComponents(m, g)

	n := g.Neighbors(12)[0]
	g.shared[facePair{12, n}] = Edge{100, 101}
	g.shared[facePair{n, 12}] = Edge{100, 101}

	res := CheckOrientation(m, g, comps)

	if !reflect.DeepEqual(res.Flipped, []int{3}) {
		t.Errorf("expected flipped [3], got %v", res.Flipped)
	}
	if len(res.Failed) != 1 || res.Failed[0].Component != 1 {
		t.Errorf("expected component 1 to fail, got %v", res.Failed)
	}
}

func TestPropagateOrientationFailure(t *testing.T) {
	m := testmesh.Strip(2)
	g := corruptedGraph()
	comp := &Component{Index: 4, Faces: []int{0, 1}}

	_, err := PropagateOrientation(m.CloneFaces(), g, comp)
	failure, ok := err.(ComponentFailure)
	if !ok {
		t.Fatalf("expected ComponentFailure, got %T (%v)", err, err)
	}
	if failure.Component != 4 {
		t.Errorf("expected component 4, got %d", failure.Component)
	}
}

func TestTraversal(t *testing.T) {
	f := mesh.Face{1, 2, 3}

	if fwd, ok := traversal(f, Edge{1, 2}); !ok || !fwd {
		t.Errorf("expected 1->2 forward, got %v %v", fwd, ok)
	}
	if fwd, ok := traversal(f, Edge{1, 3}); !ok || fwd {
		t.Errorf("expected 1-3 backward, got %v %v", fwd, ok)
	}
	if _, ok := traversal(f, Edge{4, 5}); ok {
		t.Error("expected missing edge to fail")
	}
	if _, ok := traversal(mesh.Face{1, 2, 1}, Edge{1, 2}); ok {
		t.Error("expected ambiguous edge to fail")
	}
}
