package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"bmssp_router/pkg/geo"
	"bmssp_router/pkg/graph"
)

const maxSnapDistMeters = 500.0

// snapCandidates bounds the nearest-neighbor scan per query.
const snapCandidates = 8

// ErrPointTooFar is returned when the query point is too far from any road.
var ErrPointTooFar = errors.New("point too far from road")

// SnapResult represents a query point matched to a graph node.
type SnapResult struct {
	Node uint32  // nearest graph node
	Dist float64 // distance in meters from the query point to the road network
}

// Snapper answers nearest-node queries over the graph coordinates using a
// point R-tree keyed (lon, lat).
type Snapper struct {
	tr rtree.RTreeG[uint32]
	g  *graph.Graph
}

// NewSnapper builds the spatial index from the graph's node coordinates.
func NewSnapper(g *graph.Graph) *Snapper {
	s := &Snapper{g: g}
	for i := uint32(0); i < g.NumNodes; i++ {
		pt := [2]float64{g.NodeLon[i], g.NodeLat[i]}
		s.tr.Insert(pt, pt, i)
	}
	return s
}

// Snap finds the graph node nearest to the given lat/lng. The R-tree ranks
// candidates by planar degree distance, which disagrees with metric distance
// by the longitude scale factor, so a handful of candidates are re-measured
// in meters before committing.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	if s.g.NumNodes == 0 {
		return SnapResult{}, ErrPointTooFar
	}

	q := [2]float64{lng, lat}
	best := SnapResult{Dist: math.Inf(1)}
	seen := 0
	s.tr.Nearby(
		rtree.BoxDist[float64, uint32](q, q, nil),
		func(_, _ [2]float64, node uint32, _ float64) bool {
			d := geo.EquirectangularDist(lat, lng, s.g.NodeLat[node], s.g.NodeLon[node])
			if d < best.Dist {
				best = SnapResult{Node: node, Dist: d}
			}
			seen++
			return seen < snapCandidates
		},
	)

	// The query point usually lies on a road rather than on a junction, so
	// report the offset against the node's outgoing segments when closer.
	best.Dist = s.roadDist(lat, lng, best.Node, best.Dist)

	if best.Dist > maxSnapDistMeters {
		return SnapResult{}, ErrPointTooFar
	}
	return best, nil
}

// roadDist returns the distance in meters from the query point to the
// nearest road segment leaving node (its out-edges only), or nodeDist if
// none is closer.
func (s *Snapper) roadDist(lat, lng float64, node uint32, nodeDist float64) float64 {
	bestD := nodeDist
	start, end := s.g.EdgesFrom(node)
	for e := start; e < end; e++ {
		v := s.g.Head[e]
		if v == node {
			continue
		}
		d, _ := geo.PointToSegmentDist(lat, lng,
			s.g.NodeLat[node], s.g.NodeLon[node],
			s.g.NodeLat[v], s.g.NodeLon[v])
		if d < bestD {
			bestD = d
		}
	}
	return bestD
}
