package graph

// Graph represents a directed graph in CSR (Compressed Sparse Row) format.
// Weights are finite, non-negative float64 values (meters when the graph
// comes from the OSM ingestion path).
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32  // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32  // len: NumEdges; target node for each edge
	Weight   []float64 // len: NumEdges

	// Node coordinates; populated by the OSM ingestion path, nil for
	// graphs built from plain edge lists.
	NodeLat []float64 // len: NumNodes or nil
	NodeLon []float64 // len: NumNodes or nil
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// HasCoords reports whether the graph carries node coordinates.
func (g *Graph) HasCoords() bool {
	return g.NumNodes > 0 && len(g.NodeLat) == int(g.NumNodes) && len(g.NodeLon) == int(g.NumNodes)
}
