package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/osm"

	osmparser "bmssp_router/pkg/osm"
)

func TestFromEdgeList(t *testing.T) {
	g, err := FromEdgeList(EdgeListInput{
		NumNodes: 4,
		Edges: []Edge{
			{U: 0, V: 1, W: 2},
			{U: 0, V: 3, W: 1},
			{U: 1, V: 2, W: 1},
			{U: 3, V: 2, W: 5},
		},
	})
	if err != nil {
		t.Fatalf("FromEdgeList: %v", err)
	}

	if g.NumNodes != 4 || g.NumEdges != 4 {
		t.Fatalf("got %d nodes %d edges, want 4 and 4", g.NumNodes, g.NumEdges)
	}

	start, end := g.EdgesFrom(0)
	if end-start != 2 {
		t.Errorf("node 0 has %d out-edges, want 2", end-start)
	}
	start, end = g.EdgesFrom(2)
	if end-start != 0 {
		t.Errorf("node 2 has %d out-edges, want 0", end-start)
	}
}

func TestFromEdgeListUndirected(t *testing.T) {
	g, err := FromEdgeList(EdgeListInput{
		NumNodes:   2,
		Edges:      []Edge{{U: 0, V: 1, W: 7}},
		Undirected: true,
	})
	if err != nil {
		t.Fatalf("FromEdgeList: %v", err)
	}
	if g.NumEdges != 2 {
		t.Fatalf("NumEdges = %d, want 2 (reciprocal emitted)", g.NumEdges)
	}
	s, e := g.EdgesFrom(1)
	if e-s != 1 || g.Head[s] != 0 || g.Weight[s] != 7 {
		t.Errorf("reciprocal edge wrong: range [%d,%d) head=%v weight=%v", s, e, g.Head, g.Weight)
	}
}

func TestFromEdgeListValidation(t *testing.T) {
	tests := []struct {
		name string
		in   EdgeListInput
		want error
	}{
		{
			name: "negative node count",
			in:   EdgeListInput{NumNodes: -1},
			want: ErrBadNodeCount,
		},
		{
			name: "endpoint out of range",
			in:   EdgeListInput{NumNodes: 2, Edges: []Edge{{U: 0, V: 2, W: 1}}},
			want: ErrBadEndpoint,
		},
		{
			name: "negative weight",
			in:   EdgeListInput{NumNodes: 2, Edges: []Edge{{U: 0, V: 1, W: -1}}},
			want: ErrBadWeight,
		},
		{
			name: "NaN weight",
			in:   EdgeListInput{NumNodes: 2, Edges: []Edge{{U: 0, V: 1, W: math.NaN()}}},
			want: ErrBadWeight,
		},
		{
			name: "infinite weight",
			in:   EdgeListInput{NumNodes: 2, Edges: []Edge{{U: 0, V: 1, W: math.Inf(1)}}},
			want: ErrBadWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEdgeList(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("FromEdgeList() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromAdjacency(t *testing.T) {
	g, err := FromAdjacency(AdjacencyInput{
		NumNodes: 4,
		Adj: [][]Arc{
			{{V: 1, W: 2}, {V: 3, W: 1}},
			{{V: 2, W: 1}},
			{{V: 2, W: 0}}, // zero-weight self-loop
			{{V: 2, W: 5}},
		},
	})
	if err != nil {
		t.Fatalf("FromAdjacency: %v", err)
	}
	if g.NumNodes != 4 || g.NumEdges != 5 {
		t.Fatalf("got %d nodes %d edges, want 4 and 5", g.NumNodes, g.NumEdges)
	}
}

func TestFromAdjacencyUndirectedSelfLoop(t *testing.T) {
	// An undirected self-loop must not be duplicated.
	g, err := FromAdjacency(AdjacencyInput{
		NumNodes:   2,
		Adj:        [][]Arc{{{V: 0, W: 1}, {V: 1, W: 2}}},
		Undirected: true,
	})
	if err != nil {
		t.Fatalf("FromAdjacency: %v", err)
	}
	// 1 self-loop + forward + reciprocal = 3.
	if g.NumEdges != 3 {
		t.Fatalf("NumEdges = %d, want 3", g.NumEdges)
	}
}

func TestFromAdjacencyValidation(t *testing.T) {
	if _, err := FromAdjacency(AdjacencyInput{NumNodes: 1, Adj: [][]Arc{{{V: 5, W: 1}}}}); !errors.Is(err, ErrBadEndpoint) {
		t.Errorf("out-of-range arc: got %v, want ErrBadEndpoint", err)
	}
	if _, err := FromAdjacency(AdjacencyInput{NumNodes: 1, Adj: [][]Arc{{}, {}}}); !errors.Is(err, ErrBadNodeCount) {
		t.Errorf("adjacency longer than n: got %v, want ErrBadNodeCount", err)
	}
}

func TestBuildSimpleGraph(t *testing.T) {
	// Triangle: 100 -> 200 -> 300 -> 100.
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 100, ToNodeID: 200, Weight: 1000},
			{FromNodeID: 200, ToNodeID: 300, Weight: 2000},
			{FromNodeID: 300, ToNodeID: 100, Weight: 3000},
		},
		NodeLat: map[osm.NodeID]float64{100: 1.0, 200: 1.1, 300: 1.0},
		NodeLon: map[osm.NodeID]float64{100: 103.0, 200: 103.0, 300: 103.1},
	}

	g := Build(result)

	if g.NumNodes != 3 {
		t.Fatalf("NumNodes = %d, want 3", g.NumNodes)
	}
	if g.NumEdges != 3 {
		t.Fatalf("NumEdges = %d, want 3", g.NumEdges)
	}
	if !g.HasCoords() {
		t.Fatal("OSM-built graph should carry coordinates")
	}

	// Verify each node has exactly 1 outgoing edge.
	for i := uint32(0); i < g.NumNodes; i++ {
		start, end := g.EdgesFrom(i)
		if end-start != 1 {
			t.Errorf("Node %d has %d edges, want 1", i, end-start)
		}
	}

	// Verify total weight.
	var totalWeight float64
	for _, w := range g.Weight {
		totalWeight += w
	}
	if totalWeight != 6000 {
		t.Errorf("total weight = %f, want 6000", totalWeight)
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	result := &osmparser.ParseResult{
		Edges:   nil,
		NodeLat: map[osm.NodeID]float64{},
		NodeLon: map[osm.NodeID]float64{},
	}

	g := Build(result)

	if g.NumNodes != 0 {
		t.Errorf("NumNodes = %d, want 0", g.NumNodes)
	}
	if g.NumEdges != 0 {
		t.Errorf("NumEdges = %d, want 0", g.NumEdges)
	}
}

func TestBuildCSRInvariants(t *testing.T) {
	// Star graph: center -> A, center -> B, center -> C plus one return edge.
	result := &osmparser.ParseResult{
		Edges: []osmparser.RawEdge{
			{FromNodeID: 10, ToNodeID: 20, Weight: 100},
			{FromNodeID: 10, ToNodeID: 30, Weight: 200},
			{FromNodeID: 10, ToNodeID: 40, Weight: 300},
			{FromNodeID: 20, ToNodeID: 10, Weight: 100},
		},
		NodeLat: map[osm.NodeID]float64{10: 1.0, 20: 1.1, 30: 1.2, 40: 1.3},
		NodeLon: map[osm.NodeID]float64{10: 103.0, 20: 103.1, 30: 103.2, 40: 103.3},
	}

	g := Build(result)

	if g.NumNodes != 4 {
		t.Fatalf("NumNodes = %d, want 4", g.NumNodes)
	}
	if g.NumEdges != 4 {
		t.Fatalf("NumEdges = %d, want 4", g.NumEdges)
	}

	// FirstOut is monotonically non-decreasing.
	for i := uint32(1); i <= g.NumNodes; i++ {
		if g.FirstOut[i] < g.FirstOut[i-1] {
			t.Errorf("FirstOut[%d]=%d < FirstOut[%d]=%d, not monotonic", i, g.FirstOut[i], i-1, g.FirstOut[i-1])
		}
	}

	if g.FirstOut[g.NumNodes] != g.NumEdges {
		t.Errorf("FirstOut[%d]=%d != NumEdges=%d", g.NumNodes, g.FirstOut[g.NumNodes], g.NumEdges)
	}

	for i, h := range g.Head {
		if h >= g.NumNodes {
			t.Errorf("Head[%d]=%d >= NumNodes=%d", i, h, g.NumNodes)
		}
	}
}
