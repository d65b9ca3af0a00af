// Package tree provides the retained node tree behind the layout system.
//
// A Hierarchy owns a single root Branch that spans the whole surface. Every
// other Branch is created as the child of exactly one existing Branch and is
// stored in one of two places:
//
//   - Permanent children live in an append-only sequence. A permanent child
//     is addressed as "#p<index>" and that address never changes.
//   - Removable children live under integer slots. A removable child is
//     addressed as "#r<slot>". Slots are handed out lowest-first and reused
//     after the child is destroyed.
//
// # Addressing
//
// Structural addresses chain segments with "/", for example "#p0/#r2".
// Anything not starting with "#" is a relative name: a key in the register
// of the branch it is looked up in. Names chain too, and each segment is
// translated in the branch reached by the previous one:
//
//	h := tree.New()
//	h.Create("", "menu", layout.Fill())
//	h.Create("menu", "play", layout.Window{WidthAbsolute: 120, HeightAbsolute: 40})
//	b, err := h.Resolve("menu/play")
//
// Methods with an OrPass suffix accept either form.
//
// # Cascades
//
// Hierarchy.Update feeds the surface size to the root and lays out the whole
// tree top-down. Visibility, path listing and the diagnostic sketches walk the
// tree the same way: permanent children in order, then removable children by
// ascending slot.
//
// Nodes are kept in an arena and referenced by generational ids, so a Branch
// is only a handle. Handles to destroyed nodes report Valid() == false.
//
// The tree is not safe for concurrent use.
package tree
