package fuse

import "container/heap"

// ResultItem is one fused (docno, score) pair competing for a spot in a
// topic's output list.
type ResultItem struct {
	Docno string
	Score float64
}

// topK is a bounded min-heap of ResultItem, rooted at the lowest score
// currently retained. It is shaped after the Sneller Ktop pattern (push
// while under capacity, otherwise compare against and replace the
// root) but built on the standard container/heap interface rather than
// a hand-rolled indirection array, since spec.md section 4.3 doesn't
// need Ktop's secondary-key tie-break machinery -- just a capacity cap
// on the number of docnos retained per topic.
type topK struct {
	items []ResultItem
	limit int
}

// newTopK returns an empty heap that retains at most limit items. A
// non-positive limit means unbounded.
func newTopK(limit int) *topK {
	return &topK{limit: limit}
}

func (h *topK) Len() int { return len(h.items) }
func (h *topK) Less(i, j int) bool {
	if h.items[i].Score != h.items[j].Score {
		return h.items[i].Score < h.items[j].Score
	}
	// break ties the opposite way so that, after Drain's reversal, equal
	// scores come out in ascending docno order.
	return h.items[i].Docno > h.items[j].Docno
}
func (h *topK) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *topK) Push(x interface{}) { h.items = append(h.items, x.(ResultItem)) }
func (h *topK) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// Offer tries to add item to the retained set. It always succeeds while
// under the limit; once full, item is dropped only if its score is
// strictly below the current minimum -- a tie evicts the minimum and
// takes its place, matching pq.c's `prio < top.val` drop test.
func (h *topK) Offer(item ResultItem) {
	if h.limit <= 0 || h.Len() < h.limit {
		heap.Push(h, item)
		return
	}
	if h.Len() == 0 {
		return
	}
	if item.Score >= h.items[0].Score {
		h.items[0] = item
		heap.Fix(h, 0)
	}
}

// Drain returns every retained item sorted by descending score (ties
// broken by ascending docno for determinism) and empties the heap.
func (h *topK) Drain() []ResultItem {
	out := make([]ResultItem, h.Len())
	i := len(out) - 1
	for h.Len() > 0 {
		out[i] = heap.Pop(h).(ResultItem)
		i--
	}
	return out
}
