package routing

import (
	"context"
	"errors"
	"math"

	"bmssp_router/pkg/graph"
	"bmssp_router/pkg/sssp"
)

// ErrNoRoute is returned when no route exists between the two points.
var ErrNoRoute = errors.New("no route found")

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Segment represents a road segment in the route result.
type Segment struct {
	DistanceMeters float64
	Geometry       []LatLng
}

// RouteResult is the output of a route query.
type RouteResult struct {
	TotalDistanceMeters float64
	Segments            []Segment
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, start, end LatLng) (*RouteResult, error)
}

// Algorithm selects the shortest-path solver used for queries.
type Algorithm string

const (
	AlgorithmBMSSP    Algorithm = "bmssp"
	AlgorithmDijkstra Algorithm = "dijkstra"
)

// Engine implements Router with a single-source search from the snapped
// start node over the CSR graph.
type Engine struct {
	g       *graph.Graph
	algo    Algorithm
	snapper *Snapper
}

// NewEngine creates a routing engine over a graph with node coordinates.
func NewEngine(g *graph.Graph, algo Algorithm) *Engine {
	if algo == "" {
		algo = AlgorithmBMSSP
	}
	return &Engine{
		g:       g,
		algo:    algo,
		snapper: NewSnapper(g),
	}
}

// Route computes the shortest path between two points.
func (e *Engine) Route(ctx context.Context, start, end LatLng) (*RouteResult, error) {
	// Step 1: Snap both points to graph nodes.
	startSnap, err := e.snapper.Snap(start.Lat, start.Lng)
	if err != nil {
		return nil, err
	}
	endSnap, err := e.snapper.Snap(end.Lat, end.Lng)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Single-source shortest paths from the start node. The solver
	// runs to completion synchronously; cancellation is checked around it.
	opts := sssp.Options{Source: startSnap.Node, ReturnPredecessors: true}
	var res *sssp.Result
	switch e.algo {
	case AlgorithmDijkstra:
		res, err = sssp.Dijkstra(e.g, opts)
	default:
		res, err = sssp.Solve(e.g, opts)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := res.Dist[endSnap.Node]
	if math.IsInf(total, 1) {
		return nil, ErrNoRoute
	}

	// Step 3: Trace predecessors into a node polyline.
	nodes := tracePath(res.Pred, startSnap.Node, endSnap.Node)

	return &RouteResult{
		TotalDistanceMeters: total,
		Segments: []Segment{
			{
				DistanceMeters: total,
				Geometry:       e.buildGeometry(nodes),
			},
		},
	}, nil
}

// tracePath walks the predecessor chain from end back to start and reverses
// it into travel order.
func tracePath(pred []int32, start, end uint32) []uint32 {
	var path []uint32
	node := end
	for {
		path = append(path, node)
		if node == start {
			break
		}
		p := pred[node]
		if p < 0 {
			break
		}
		node = uint32(p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// buildGeometry converts a node sequence into lat/lng coordinates.
func (e *Engine) buildGeometry(nodes []uint32) []LatLng {
	if !e.g.HasCoords() {
		return nil
	}
	geom := make([]LatLng, len(nodes))
	for i, n := range nodes {
		geom[i] = LatLng{Lat: e.g.NodeLat[n], Lng: e.g.NodeLon[n]}
	}
	return geom
}
