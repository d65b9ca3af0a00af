package tree

import "github.com/go-drift/hierarchy/pkg/graphics"

// ApplyLayout lays out b and its whole subtree. The incoming rectangle goes
// to b's own layout, and b's computed rectangle becomes the incoming
// rectangle of each child.
func (b *Branch) ApplyLayout(origin graphics.Offset, width, height float64) {
	if n := b.node(); n != nil {
		b.arena.applyLayout(n, origin, width, height)
	}
}

// RecomputeVisibility pushes b's effective visibility into every
// descendant's parent-visibility flag.
func (b *Branch) RecomputeVisibility() {
	if n := b.node(); n != nil {
		b.arena.pushVisibility(n)
	}
}

// Paths lists the display paths of b and its descendants, depth first.
// Empty paths (the root's) are left out.
func (b *Branch) Paths() []string {
	n := b.node()
	if n == nil {
		return nil
	}
	var list []string
	b.arena.collectPaths(n, &list)
	return list
}

func (a *arena) applyLayout(n *node, origin graphics.Offset, width, height float64) {
	n.container.Update(origin, width, height)
	pos := n.container.Position()
	for _, id := range n.children() {
		if child := a.get(id); child != nil {
			a.applyLayout(child, pos.Origin(), pos.Width(), pos.Height())
		}
	}
}

// pushVisibility does not stop at children whose flag is already correct.
func (a *arena) pushVisibility(n *node) {
	visible := n.isVisible()
	for _, id := range n.children() {
		if child := a.get(id); child != nil {
			child.parentVisible = visible
			a.pushVisibility(child)
		}
	}
}

func (a *arena) collectPaths(n *node, list *[]string) {
	if p := n.displayPath(); p != "" {
		*list = append(*list, p)
	}
	for _, id := range n.children() {
		if child := a.get(id); child != nil {
			a.collectPaths(child, list)
		}
	}
}
