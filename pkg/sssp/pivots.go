package sssp

import (
	"math"
	"sort"
)

// eps is the tolerance for tight-edge detection. All other distance
// comparisons stay exact.
const eps = 1e-12

// findPivots grows a witness set around the seeds with k rounds of bounded
// relaxation, then keeps only the seeds that root a tight-path subtree of at
// least k vertices. If the expansion blows past k*|seeds| every seed is
// worth keeping and the whole seed set is returned as pivots.
func (s *solver) findPivots(bound float64, seeds []uint32) (pivots, witnesses []uint32) {
	s.stats.PivotCalls++

	witnesses = append(witnesses, seeds...)
	for _, v := range seeds {
		s.inSet[v] = true
	}
	defer func() {
		for _, v := range witnesses {
			s.inSet[v] = false
		}
	}()

	limit := s.k * len(seeds)
	exploded := false
	frontier := seeds
	for round := 0; round < s.k; round++ {
		var next []uint32
		for _, u := range frontier {
			s.relaxOut(u, bound, true, func(v uint32, nd float64) {
				if !s.inSet[v] {
					s.inSet[v] = true
					next = append(next, v)
					witnesses = append(witnesses, v)
				}
			})
		}
		if len(witnesses) > limit {
			exploded = true
			break
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	if exploded {
		return seeds, witnesses
	}

	// Tight forest: for each witness pick an in-neighbor inside the set
	// lying on a shortest path, preferring the one with the smallest dist.
	// CSR stores out-edges only, so parents are found from the tail side.
	parent := make(map[uint32]uint32, len(witnesses))
	for _, u := range witnesses {
		du := s.dist[u]
		if math.IsInf(du, 1) {
			continue
		}
		start, end := s.g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := s.g.Head[e]
			if v == u || !s.inSet[v] {
				continue
			}
			if math.Abs(du+s.g.Weight[e]-s.dist[v]) <= eps {
				if p, ok := parent[v]; !ok || du < s.dist[p] {
					parent[v] = u
				}
			}
		}
	}

	// Subtree sizes: children sit at larger distances than their parents,
	// so walking the dist-sorted witnesses from the back accumulates leaves
	// before the nodes above them.
	byDist := append([]uint32(nil), witnesses...)
	sort.Slice(byDist, func(i, j int) bool { return s.dist[byDist[i]] < s.dist[byDist[j]] })
	size := make(map[uint32]int, len(witnesses))
	for _, v := range byDist {
		size[v] = 1
	}
	for i := len(byDist) - 1; i >= 0; i-- {
		v := byDist[i]
		if p, ok := parent[v]; ok {
			size[p] += size[v]
		}
	}

	for _, x := range seeds {
		if _, hasParent := parent[x]; !hasParent && size[x] >= s.k {
			pivots = append(pivots, x)
		}
	}
	return pivots, witnesses
}
