package tree

import "container/heap"

// slotAllocator hands out the lowest removable slot id not in use.
// Released ids go on a min-heap.
type slotAllocator struct {
	next int
	free slotHeap
}

func (a *slotAllocator) acquire() int {
	if a.free.Len() > 0 {
		return heap.Pop(&a.free).(int)
	}
	id := a.next
	a.next++
	return id
}

func (a *slotAllocator) release(id int) {
	heap.Push(&a.free, id)
}

type slotHeap []int

func (h slotHeap) Len() int           { return len(h) }
func (h slotHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h slotHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *slotHeap) Push(x any) { *h = append(*h, x.(int)) }

func (h *slotHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
