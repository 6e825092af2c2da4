package streams

import "container/heap"

// indexed pairs a produced element with its original input index. Per-worker
// ordered runs are slices of indexed[T] sorted ascending by Index, since a
// single worker's successive pulls strictly increase in starting index under
// the CAS-based source.
type indexed[T any] struct {
	Index int
	Item  T
}

// runCursor tracks one worker's position within its sorted ordered run during
// the k-way merge.
type runCursor[T any] struct {
	run []indexed[T]
	pos int
}

// indexMergeHeap is a container/heap.Interface over the current head of each
// worker's run, ordered by input index. This is the stdlib-backed analogue of
// the hand-rolled mergeHeap that stream.go's now-removed MergeSortedNHeap used,
// specialized to merge by input index instead of a user comparator.
type indexMergeHeap[T any] []*runCursor[T]

func (h indexMergeHeap[T]) Len() int { return len(h) }

func (h indexMergeHeap[T]) Less(i, j int) bool {
	return h[i].run[h[i].pos].Index < h[j].run[h[j].pos].Index
}

func (h indexMergeHeap[T]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *indexMergeHeap[T]) Push(x any) {
	*h = append(*h, x.(*runCursor[T]))
}

func (h *indexMergeHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeOrderedRuns performs a k-way merge of per-worker sorted-by-index runs,
// truncating at stopIndex (items with Index >= stopIndex are dropped). Pass
// stopIndex = -1 (or any negative value) for no truncation.
func mergeOrderedRuns[T any](runs [][]indexed[T], stopIndex int) []T {
	h := make(indexMergeHeap[T], 0, len(runs))
	total := 0
	for _, r := range runs {
		if len(r) > 0 {
			h = append(h, &runCursor[T]{run: r})
		}
		total += len(r)
	}
	heap.Init(&h)

	out := make([]T, 0, total)
	for h.Len() > 0 {
		cur := h[0]
		item := cur.run[cur.pos]
		if stopIndex < 0 || item.Index < stopIndex {
			out = append(out, item.Item)
		}
		cur.pos++
		if cur.pos >= len(cur.run) {
			heap.Pop(&h)
		} else {
			heap.Fix(&h, 0)
		}
	}
	return out
}
