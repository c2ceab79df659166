package graph

import (
	"math"
	"sort"

	"github.com/paulmach/osm"

	osmparser "bmssp_router/pkg/osm"
)

// Edge is a weighted directed edge in builder input form.
type Edge struct {
	U, V uint32
	W    float64
}

// Arc is an adjacency-list entry: an edge to V with weight W.
type Arc struct {
	V uint32
	W float64
}

// EdgeListInput describes a graph as a flat edge list.
// Edges are directed unless Undirected is set, in which case the builder
// emits a reciprocal edge for every input edge.
type EdgeListInput struct {
	NumNodes   int
	Edges      []Edge
	Undirected bool
}

// AdjacencyInput describes a graph as per-node adjacency lists.
type AdjacencyInput struct {
	NumNodes   int
	Adj        [][]Arc
	Undirected bool
}

// FromEdgeList validates an edge list and assembles a CSR graph.
// Validation happens before any allocation of CSR arrays, so a returned
// error implies no partially built graph.
func FromEdgeList(in EdgeListInput) (*Graph, error) {
	if in.NumNodes < 0 {
		return nil, ErrBadNodeCount
	}
	n := uint32(in.NumNodes)

	for i, e := range in.Edges {
		if e.U >= n || e.V >= n {
			return nil, endpointError(i, e.U, e.V, n)
		}
		if math.IsNaN(e.W) || math.IsInf(e.W, 0) || e.W < 0 {
			return nil, weightError(i, e.W)
		}
	}

	edges := in.Edges
	if in.Undirected {
		edges = make([]Edge, 0, 2*len(in.Edges))
		for _, e := range in.Edges {
			edges = append(edges, e, Edge{U: e.V, V: e.U, W: e.W})
		}
	}

	return assemble(n, edges), nil
}

// FromAdjacency validates per-node adjacency lists and assembles a CSR graph.
func FromAdjacency(in AdjacencyInput) (*Graph, error) {
	if in.NumNodes < 0 || len(in.Adj) > in.NumNodes {
		return nil, ErrBadNodeCount
	}
	n := uint32(in.NumNodes)

	var edges []Edge
	idx := 0
	for u, arcs := range in.Adj {
		for _, a := range arcs {
			if a.V >= n {
				return nil, endpointError(idx, uint32(u), a.V, n)
			}
			if math.IsNaN(a.W) || math.IsInf(a.W, 0) || a.W < 0 {
				return nil, weightError(idx, a.W)
			}
			edges = append(edges, Edge{U: uint32(u), V: a.V, W: a.W})
			if in.Undirected && a.V != uint32(u) {
				edges = append(edges, Edge{U: a.V, V: uint32(u), W: a.W})
			}
			idx++
		}
	}

	return assemble(n, edges), nil
}

// assemble builds CSR arrays from a validated edge list by counting sort.
func assemble(n uint32, edges []Edge) *Graph {
	m := uint32(len(edges))

	firstOut := make([]uint32, n+1)
	head := make([]uint32, m)
	weight := make([]float64, m)

	for _, e := range edges {
		firstOut[e.U+1]++
	}
	for i := uint32(1); i <= n; i++ {
		firstOut[i] += firstOut[i-1]
	}

	pos := make([]uint32, n)
	copy(pos, firstOut[:n])
	for _, e := range edges {
		idx := pos[e.U]
		head[idx] = e.V
		weight[idx] = e.W
		pos[e.U]++
	}

	return &Graph{
		NumNodes: n,
		NumEdges: m,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
	}
}

// Build creates a CSR Graph from parsed OSM edges.
func Build(result *osmparser.ParseResult) *Graph {
	edges := result.Edges
	if len(edges) == 0 {
		return &Graph{FirstOut: []uint32{0}}
	}

	// Step 1: Collect all unique node IDs and build a compact mapping.
	nodeSet := make(map[osm.NodeID]uint32)
	var nodeIDs []osm.NodeID

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := nodeSet[id]; ok {
			return idx
		}
		idx := uint32(len(nodeIDs))
		nodeSet[id] = idx
		nodeIDs = append(nodeIDs, id)
		return idx
	}

	for i := range edges {
		addNode(edges[i].FromNodeID)
		addNode(edges[i].ToNodeID)
	}

	numNodes := uint32(len(nodeIDs))

	// Step 2: Build compact edge list with remapped indices.
	compact := make([]Edge, len(edges))
	for i, e := range edges {
		compact[i] = Edge{
			U: nodeSet[e.FromNodeID],
			V: nodeSet[e.ToNodeID],
			W: e.Weight,
		}
	}

	// Step 3: Sort edges by source node for cache-friendly CSR layout.
	sort.Slice(compact, func(i, j int) bool {
		if compact[i].U != compact[j].U {
			return compact[i].U < compact[j].U
		}
		return compact[i].V < compact[j].V
	})

	g := assemble(numNodes, compact)

	// Step 4: Populate node coordinates.
	nodeLat := make([]float64, numNodes)
	nodeLon := make([]float64, numNodes)
	for id, idx := range nodeSet {
		nodeLat[idx] = result.NodeLat[id]
		nodeLon[idx] = result.NodeLon[id]
	}
	g.NodeLat = nodeLat
	g.NodeLon = nodeLon

	return g
}
