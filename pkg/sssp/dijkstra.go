package sssp

import (
	"fmt"
	"math"

	"bmssp_router/pkg/graph"
)

// Dijkstra computes single-source shortest paths with a plain binary-heap
// search. It is the reference the banded solver is checked against and stays
// selectable as a query algorithm.
func Dijkstra(g *graph.Graph, opts Options) (*Result, error) {
	if opts.Source >= g.NumNodes {
		return nil, fmt.Errorf("source %d with n=%d: %w", opts.Source, g.NumNodes, ErrSourceOutOfRange)
	}
	n := g.NumNodes

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[opts.Source] = 0

	var pred []int32
	if opts.ReturnPredecessors {
		pred = make([]int32, n)
		for i := range pred {
			pred[i] = -1
		}
	}

	var stats Stats
	var h minHeap
	h.items = make([]heapItem, 0, 256)
	h.Push(opts.Source, 0)

	for h.Len() > 0 {
		cur := h.Pop()
		stats.HeapPops++

		// Skip stale entries.
		if cur.dist > dist[cur.node] {
			continue
		}

		start, end := g.EdgesFrom(cur.node)
		for e := start; e < end; e++ {
			v := g.Head[e]
			nd := cur.dist + g.Weight[e]
			if nd < dist[v] {
				dist[v] = nd
				if pred != nil {
					pred[v] = int32(cur.node)
				}
				stats.Relaxations++
				h.Push(v, nd)
			}
		}
	}

	return &Result{Dist: dist, Pred: pred, Stats: stats}, nil
}
