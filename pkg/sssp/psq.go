package sssp

import (
	"math"
	"sort"
)

// psqPair is a (vertex, value) entry in the partial-sorting queue.
// Duplicate keys are allowed; Pull resolves them.
type psqPair struct {
	key uint32
	val float64
}

// psq is a block-structured partial-sorting queue. Instead of extracting one
// minimum at a time, Pull removes up to m of the smallest pairs in one call
// and reports the exact minimum value left behind, which callers use as a
// band separator.
//
// Blocks are kept sorted ascending by val, and every value in a block is no
// larger than every value in later blocks. Insert places a pair by block
// boundary and splits a block at its median once it grows past m.
type psq struct {
	blocks [][]psqPair
	m      int     // pull cap and soft block capacity
	b      float64 // fallback bound returned when empty
	size   int     // stored pairs, duplicates included
}

func newPSQ(m int, b float64) *psq {
	if m < 1 {
		m = 1
	}
	return &psq{m: m, b: b}
}

func (q *psq) Len() int { return q.size }

// Insert adds one pair. The target is the first block whose largest value is
// >= val; a new trailing block is opened when no block qualifies.
func (q *psq) Insert(key uint32, val float64) {
	bi := -1
	for i, blk := range q.blocks {
		if len(blk) == 0 || blk[len(blk)-1].val >= val {
			bi = i
			break
		}
	}
	if bi < 0 {
		q.blocks = append(q.blocks, make([]psqPair, 0, q.m+1))
		bi = len(q.blocks) - 1
	}

	blk := q.blocks[bi]
	pos := sort.Search(len(blk), func(j int) bool { return blk[j].val >= val })
	blk = append(blk, psqPair{})
	copy(blk[pos+1:], blk[pos:])
	blk[pos] = psqPair{key, val}
	q.blocks[bi] = blk
	q.size++

	if len(blk) > q.m {
		q.splitBlock(bi)
	}
}

// splitBlock splits a sorted over-capacity block at its median into two
// adjacent blocks.
func (q *psq) splitBlock(i int) {
	blk := q.blocks[i]
	mid := len(blk) / 2
	hi := append(make([]psqPair, 0, q.m+1), blk[mid:]...)
	q.blocks = append(q.blocks, nil)
	copy(q.blocks[i+1:], q.blocks[i:])
	q.blocks[i] = blk[:mid]
	q.blocks[i+1] = hi
}

// BatchPrepend bulk-loads pairs that are all strictly smaller than every
// value currently stored. Pairs violating that precondition are routed
// through Insert instead of corrupting the block order. The remaining pairs
// are sorted, cut into half-capacity chunks and placed before the existing
// blocks.
func (q *psq) BatchPrepend(pairs []psqPair) {
	if len(pairs) == 0 {
		return
	}

	floor := q.minRemaining()
	small := make([]psqPair, 0, len(pairs))
	for _, p := range pairs {
		if p.val < floor {
			small = append(small, p)
		} else {
			q.Insert(p.key, p.val)
		}
	}
	if len(small) == 0 {
		return
	}

	sort.Slice(small, func(i, j int) bool { return small[i].val < small[j].val })

	chunk := (q.m + 1) / 2
	var front [][]psqPair
	for start := 0; start < len(small); start += chunk {
		end := start + chunk
		if end > len(small) {
			end = len(small)
		}
		front = append(front, small[start:end:end])
	}
	q.blocks = append(front, q.blocks...)
	q.size += len(small)
}

// Pull removes up to m pairs from the front of the queue and returns their
// keys, deduplicated, together with the exact minimum value still stored.
// When the queue is (or becomes) empty the fallback bound is returned.
func (q *psq) Pull() ([]uint32, float64) {
	if q.size == 0 {
		return nil, q.b
	}

	keys := make([]uint32, 0, q.m)
	seen := make(map[uint32]struct{}, q.m)

	taken := 0
	for taken < q.m && len(q.blocks) > 0 {
		blk := q.blocks[0]
		if len(blk) == 0 {
			q.blocks = q.blocks[1:]
			continue
		}
		p := blk[0]
		q.blocks[0] = blk[1:]
		q.size--
		taken++

		// Blocks are globally ordered, so the first occurrence of a key
		// carries its smallest value; later duplicates are stale.
		if _, dup := seen[p.key]; !dup {
			seen[p.key] = struct{}{}
			keys = append(keys, p.key)
		}
	}
	// Drop front blocks this pull emptied so a later Insert cannot place a
	// large value ahead of smaller ones stored in the following blocks.
	for len(q.blocks) > 0 && len(q.blocks[0]) == 0 {
		q.blocks = q.blocks[1:]
	}

	if q.size == 0 {
		q.blocks = nil
		return keys, q.b
	}
	return keys, q.minRemaining()
}

// minRemaining returns the smallest stored value, or +Inf when empty.
func (q *psq) minRemaining() float64 {
	for _, blk := range q.blocks {
		if len(blk) > 0 {
			return blk[0].val
		}
	}
	return math.Inf(1)
}
