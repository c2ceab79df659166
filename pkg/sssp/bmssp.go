package sssp

import "math"

// bmssp completes all vertices whose shortest distance falls below bound and
// is reachable through the seed set, working top-down through recursion
// levels. It returns the effective completion bound together with the
// vertices completed by this frame.
func (s *solver) bmssp(level int, bound float64, seeds []uint32) (float64, []uint32) {
	if level == 0 {
		x := seeds[0]
		for _, y := range seeds[1:] {
			if s.dist[y] < s.dist[x] {
				x = y
			}
		}
		return s.baseCase(x, bound)
	}

	pivots, witnesses := s.findPivots(bound, seeds)
	if len(pivots) == 0 {
		// No seed roots a large tight subtree; fall back to the seeds
		// themselves so small graphs still make progress.
		pivots = seeds
	}

	q := newPSQ(pullCap(level, s.t), bound)
	for _, x := range pivots {
		q.Insert(x, s.dist[x])
	}

	var completed []uint32
	inU := make(map[uint32]struct{})
	addU := func(v uint32) {
		if _, ok := inU[v]; !ok {
			inU[v] = struct{}{}
			completed = append(completed, v)
		}
	}

	for q.Len() > 0 {
		si, bi := q.Pull()
		s.stats.Pulls++
		if len(si) == 0 {
			break
		}

		bpi, ui := s.bmssp(level-1, bi, si)
		for _, v := range ui {
			addU(v)
		}

		// Re-expand from the completed band. Edges landing back inside
		// [bound, inf) are out of scope, [bi, bound) re-enter the queue,
		// [bpi, bi) belong to a finer band and are bulk-prepended, and
		// anything below bpi is already complete.
		var finer []psqPair
		for _, u := range ui {
			s.relaxOut(u, math.Inf(1), true, func(v uint32, nd float64) {
				switch {
				case nd >= bi && nd < bound:
					q.Insert(v, nd)
				case nd >= bpi && nd < bi:
					finer = append(finer, psqPair{v, nd})
				}
			})
		}
		// Seeds the child call did not complete still belong to the
		// finer band.
		for _, x := range si {
			if d := s.dist[x]; d >= bpi && d < bi {
				finer = append(finer, psqPair{x, d})
			}
		}
		q.BatchPrepend(finer)
	}

	// The pivot expansion discovered witnesses through at most k relax
	// rounds; deeper tight chains among them still need propagation before
	// this frame reports the band complete.
	var extra []uint32
	for _, x := range witnesses {
		if s.dist[x] < bound {
			extra = append(extra, x)
		}
	}
	s.completionPass(extra, bound)
	for _, x := range extra {
		addU(x)
	}

	return bound, completed
}

// pullCap sizes the PSQ pull batch for a recursion level. Any value >= 4
// that grows with the level preserves correctness; growing by a factor of
// 2^ceil(t/4) per level keeps per-pull work in step with the level width.
func pullCap(level, t int) int {
	shift := (level - 1) * ((t + 3) / 4)
	m := 1 << shift
	if m < 4 {
		m = 4
	}
	return m
}
