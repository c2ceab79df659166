package sssp

// heapItem is an entry in the bounded-search min-heap.
type heapItem struct {
	node uint32
	dist float64
}

// minHeap is a concrete-typed binary min-heap ordered by dist.
// Avoids interface boxing overhead of container/heap.
type minHeap struct {
	items []heapItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(node uint32, dist float64) {
	h.items = append(h.items, heapItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() heapItem {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top
}

// siftUp uses hole-sift: saves the floating item and does 1 assignment per
// level instead of 3 (swap).
func (h *minHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if item.dist >= h.items[parent].dist {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

// siftDown uses hole-sift: saves the floating item and does 1 assignment per
// level instead of 3 (swap).
func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].dist < h.items[child].dist {
			child = right
		}
		if item.dist <= h.items[child].dist {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}
