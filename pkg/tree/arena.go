package tree

// nodeID identifies a node in the arena. The generation changes every time
// an arena slot is recycled, so ids of destroyed nodes never match again.
type nodeID struct {
	index uint32
	gen   uint32
}

type arenaEntry struct {
	gen  uint32
	node *node
}

// arena stores every node of one hierarchy. Parents reference children by
// id, never by pointer.
type arena struct {
	entries []arenaEntry
	free    []uint32
	live    int
	palette Palette
}

func (a *arena) insert(n *node) nodeID {
	a.live++
	if k := len(a.free); k > 0 {
		idx := a.free[k-1]
		a.free = a.free[:k-1]
		e := &a.entries[idx]
		e.node = n
		return nodeID{index: idx, gen: e.gen}
	}
	a.entries = append(a.entries, arenaEntry{node: n})
	return nodeID{index: uint32(len(a.entries) - 1)}
}

// get returns the node for id, or nil if it was destroyed.
func (a *arena) get(id nodeID) *node {
	if int(id.index) >= len(a.entries) {
		return nil
	}
	e := a.entries[id.index]
	if e.gen != id.gen {
		return nil
	}
	return e.node
}

// removeSubtree frees id and every node below it.
func (a *arena) removeSubtree(id nodeID) {
	stack := []nodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := a.get(cur)
		if n == nil {
			continue
		}
		stack = append(stack, n.children()...)

		e := &a.entries[cur.index]
		e.node = nil
		e.gen++
		a.free = append(a.free, cur.index)
		a.live--
	}
}
