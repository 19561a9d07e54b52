// Package rectindex provides two-dimensional spatial indexing and
// neighbor topology for patches of an adaptive-mesh-refinement
// hierarchy: RectangleMap (a point/range-queryable map of rectangles),
// AdjacencyList (a directed neighbor graph), and the meshing
// operations that compute one from the other and fill halo cells.
package rectindex
