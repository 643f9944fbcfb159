package climb

import (
	"container/heap"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// entry is a discovered-but-unexpanded position with its accumulated distance.
// seq records insertion order and breaks distance ties.
type entry struct {
	dist int
	seq  uint64
	pos  heightmap.Position
}

// frontier hands out entries for expansion. A correct frontier pops in
// non-decreasing dist order; the runner checks this through the visited set.
type frontier interface {
	push(e entry)
	pop() entry
	Len() int
}

// minFrontier is a binary min-heap ordered by (dist, seq).
type minFrontier struct {
	items entryHeap
}

func newMinFrontier(capacity int) *minFrontier {
	return &minFrontier{items: make(entryHeap, 0, capacity)}
}

func (f *minFrontier) push(e entry) { heap.Push(&f.items, e) }
func (f *minFrontier) pop() entry   { return heap.Pop(&f.items).(entry) }
func (f *minFrontier) Len() int     { return len(f.items) }

// entryHeap implements heap.Interface over entries.
type entryHeap []entry

// Len returns the number of items in the heap.
func (h entryHeap) Len() int { return len(h) }

// Less orders by distance, then by insertion sequence.
func (h entryHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].seq < h[j].seq
}

// Swap swaps two elements in the heap.
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Push adds x, which must be an entry.
func (h *entryHeap) Push(x any) { *h = append(*h, x.(entry)) }

// Pop removes and returns the last element; heap.Pop has already moved the minimum there.
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
