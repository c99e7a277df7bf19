// Package topology classifies the edges of a triangle mesh and walks the
// faces that share them.
//
// The pipeline is IndexEdges → BuildAdjacency → {SplitComponents,
// CheckOrientation}. Every function reads the mesh without modifying it and
// keeps its working state local to the call, so independent meshes can be
// analysed concurrently.
//
// Only edges shared by exactly two faces link faces together. Boundary and
// non-manifold edges are dead ends for every traversal.
package topology
