package sssp

import (
	"errors"
	"fmt"
	"math"

	"bmssp_router/pkg/graph"
)

// ErrSourceOutOfRange is returned when the requested source vertex does not
// exist in the graph.
var ErrSourceOutOfRange = errors.New("source vertex out of range")

// Options configures a single-source shortest-path computation.
type Options struct {
	Source uint32

	// ReturnPredecessors allocates and fills the predecessor array.
	ReturnPredecessors bool

	// KSteps overrides the computed expansion parameter k when positive.
	// Values below 2 are raised to 2; k=1 lets base cases settle a single
	// vertex and stall on dense clusters.
	KSteps int

	// PivotFactor is reserved and currently ignored.
	PivotFactor float64
}

// Stats reports counters accumulated during one computation.
type Stats struct {
	Relaxations uint64
	HeapPops    uint64
	Pulls       uint64
	BaseCases   uint64
	PivotCalls  uint64
}

// Result holds the output of a shortest-path computation. Dist[v] is +Inf
// for unreachable vertices. Pred is nil unless requested; Pred[v] is -1 for
// the source and for unreachable vertices.
type Result struct {
	Dist  []float64
	Pred  []int32
	Stats Stats
}

// Solve computes single-source shortest-path distances over g.
func Solve(g *graph.Graph, opts Options) (*Result, error) {
	if opts.Source >= g.NumNodes {
		return nil, fmt.Errorf("source %d with n=%d: %w", opts.Source, g.NumNodes, ErrSourceOutOfRange)
	}
	n := g.NumNodes

	// Parameter selection from n. l is the working logarithm, k the
	// expansion/settlement cap, t the level width, levels the recursion
	// height.
	l := math.Log(math.Max(2, float64(n)))
	if l < 1 {
		l = 1
	}
	k := int(math.Cbrt(l))
	if k < 2 {
		k = 2
	}
	if opts.KSteps > 0 {
		k = opts.KSteps
		if k < 2 {
			k = 2
		}
	}
	t := int(math.Pow(l, 2.0/3.0))
	if t < 1 {
		t = 1
	}
	levels := int(math.Ceil(l / float64(t)))
	if levels < 1 {
		levels = 1
	}

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

	s := &solver{
		g:     g,
		dist:  dist,
		pred:  pred,
		k:     k,
		t:     t,
		inSet: make([]bool, n),
	}
	s.bmssp(levels, math.Inf(1), []uint32{opts.Source})

	return &Result{Dist: dist, Pred: pred, Stats: s.stats}, nil
}
