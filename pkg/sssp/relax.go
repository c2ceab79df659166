package sssp

import (
	"math"

	"bmssp_router/pkg/graph"
)

// solver carries the shared per-computation state. dist and pred are the
// only structures mutated across recursion frames; everything else is
// frame-local.
type solver struct {
	g    *graph.Graph
	dist []float64
	pred []int32 // nil when predecessors were not requested
	k    int     // relaxation rounds / settlement cap
	t    int     // level width parameter, drives PSQ block sizing

	inSet []bool // scratch membership marker, cleared after each use

	stats Stats
}

// relaxOut walks the out-edges of u and tightens dist. Edges whose candidate
// distance nd reaches bound are skipped. On a strict improvement dist[v] and
// pred[v] are updated. visit is called for every accepted edge: strict
// improvements always, equalities only when eqOK is set, so vertices already
// at their final distance can still be carried forward by the caller.
func (s *solver) relaxOut(u uint32, bound float64, eqOK bool, visit func(v uint32, nd float64)) {
	du := s.dist[u]
	if math.IsInf(du, 1) {
		return
	}
	start, end := s.g.EdgesFrom(u)
	for e := start; e < end; e++ {
		v := s.g.Head[e]
		nd := du + s.g.Weight[e]
		if nd >= bound {
			continue
		}
		if nd < s.dist[v] {
			s.dist[v] = nd
			if s.pred != nil {
				s.pred[v] = int32(u)
			}
			s.stats.Relaxations++
			visit(v, nd)
		} else if eqOK && nd == s.dist[v] {
			s.stats.Relaxations++
			visit(v, nd)
		}
	}
}

// completionPass runs a bounded multi-source Dijkstra from the given seeds at
// their current distances. Seeds discovered by the pivot expansion may still
// have unpropagated tight chains below them; this pass settles those before
// the frame returns.
func (s *solver) completionPass(seeds []uint32, bound float64) {
	if len(seeds) == 0 {
		return
	}
	var h minHeap
	h.items = make([]heapItem, 0, 2*len(seeds))
	for _, v := range seeds {
		h.Push(v, s.dist[v])
	}
	for h.Len() > 0 {
		cur := h.Pop()
		s.stats.HeapPops++
		if cur.dist > s.dist[cur.node] {
			continue
		}
		s.relaxOut(cur.node, bound, false, func(v uint32, nd float64) {
			h.Push(v, nd)
		})
	}
}
