package tree

import (
	"strings"

	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/layout"
)

// CreateChild adds an unregistered child and returns its structural address.
//
// Permanent children are appended and addressed "#p<index>". Removable
// children take the lowest free slot and are addressed "#r<slot>". A
// non-empty name becomes the child's display name, for permanent children
// too; an empty name defaults to the child's address.
func (b *Branch) CreateChild(removable bool, l layout.PositionLayout, name string) (string, error) {
	n, err := b.live("tree.CreateChild")
	if err != nil {
		return "", err
	}
	return b.createChild(n, removable, l, name).String(), nil
}

// CreateNamedChild adds a child that callers reach by name.
//
// An empty name creates an anonymous permanent child and returns its
// structural address. Otherwise a removable child is created, registered
// under name, and name is returned. A name already in the register fails
// without changing anything.
func (b *Branch) CreateNamedChild(name string, l layout.PositionLayout) (string, error) {
	const op = "tree.CreateNamedChild"
	n, err := b.live(op)
	if err != nil {
		return "", err
	}
	if name == "" {
		return b.createChild(n, false, l, "").String(), nil
	}
	if IsStructural(name) || strings.Contains(name, "/") {
		return "", errors.New(op, errors.KindStructure, name, errors.ErrInvalidName,
			"the key %q must not start with '#' or contain '/'", name)
	}
	if _, ok := n.register[name]; ok {
		return "", errors.New(op, errors.KindCollision, name, errors.ErrDuplicateKey,
			"the key %q is already in use", name)
	}
	seg := b.createChild(n, true, l, name)
	n.register[name] = seg
	return name, nil
}

func (b *Branch) createChild(n *node, removable bool, l layout.PositionLayout, name string) Segment {
	var seg Segment
	if removable {
		seg = Segment{Class: Removable, Index: n.slots.acquire()}
	} else {
		seg = Segment{Class: Permanent, Index: len(n.permanent)}
	}
	if name == "" {
		name = seg.String()
	}

	child := newNode(n.depth+1, n.isVisible(), name, n.displayPath(), l)
	id := b.arena.insert(child)
	if removable {
		n.removable[seg.Index] = id
	} else {
		n.permanent = append(n.permanent, id)
	}
	return seg
}

// Destroy deletes the removable child at address together with its whole
// subtree. The register is not touched, so a name pointing at the child is
// left dangling. Permanent children can never be destroyed.
func (b *Branch) Destroy(address string) error {
	const op = "tree.Destroy"
	n, err := b.live(op)
	if err != nil {
		return err
	}
	class, err := parseClass(op, address)
	if err != nil {
		return err
	}
	if class == Permanent {
		return errors.New(op, errors.KindStructure, address, errors.ErrPermanent,
			"permanent branches cannot be destroyed directly")
	}
	seg, err := parseSegment(op, address)
	if err != nil {
		return err
	}
	id, ok := n.removable[seg.Index]
	if !ok {
		return errors.New(op, errors.KindResolution, address, errors.ErrOutOfRange,
			"removable branch with slot %d does not exist", seg.Index)
	}

	delete(n.removable, seg.Index)
	n.slots.release(seg.Index)
	b.arena.removeSubtree(id)
	return nil
}

// DestroyByName destroys the child registered under name and clears the
// register entry. On failure the register is left as it was.
func (b *Branch) DestroyByName(name string) error {
	const op = "tree.DestroyByName"
	n, err := b.live(op)
	if err != nil {
		return err
	}
	seg, ok := n.register[name]
	if !ok {
		return errors.New(op, errors.KindResolution, name, errors.ErrUnknownKey,
			"widget registered as %q does not exist", name)
	}
	if err := b.Destroy(seg.String()); err != nil {
		return err
	}
	delete(n.register, name)
	return nil
}

// DestroyChainOrPass resolves every segment of path but the last, then
// destroys the last one. The final segment may be structural or a name; in
// both cases registers are left untouched.
func (b *Branch) DestroyChainOrPass(path string) error {
	const op = "tree.DestroyChainOrPass"
	parent, last, err := b.splitTarget(op, path)
	if err != nil {
		return err
	}
	addr, err := parent.translateOrPass(op, last)
	if err != nil {
		return err
	}
	return parent.Destroy(addr)
}

// RemoveChainOrPass resolves every segment of path but the last, then
// removes the child registered under the last segment.
func (b *Branch) RemoveChainOrPass(path string) error {
	parent, last, err := b.splitTarget("tree.RemoveChainOrPass", path)
	if err != nil {
		return err
	}
	return parent.DestroyByName(last)
}

func (b *Branch) splitTarget(op, path string) (*Branch, string, error) {
	prefix, last := splitLast(path)
	if prefix == "" {
		if _, err := b.live(op); err != nil {
			return nil, "", err
		}
		return b, last, nil
	}
	parent, err := b.ResolveChainOrPass(prefix)
	if err != nil {
		return nil, "", err
	}
	return parent, last, nil
}
