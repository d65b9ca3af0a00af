package tree

import (
	"strings"

	"github.com/go-drift/hierarchy/pkg/errors"
)

// Translate looks name up in this branch's register and returns the
// structural address of the child it points to.
func (b *Branch) Translate(name string) (string, error) {
	seg, err := b.translate("tree.Translate", name)
	if err != nil {
		return "", err
	}
	return seg.String(), nil
}

// TranslateOrPass returns structural tokens unchanged and translates
// relative ones.
func (b *Branch) TranslateOrPass(token string) (string, error) {
	return b.translateOrPass("tree.TranslateOrPass", token)
}

// TranslateChain translates a "/"-separated chain of relative names into a
// structural address. Each name is looked up in the branch reached by the
// names before it.
func (b *Branch) TranslateChain(path string) (string, error) {
	return b.translateChain("tree.TranslateChain", path, false)
}

// TranslateChainOrPass is TranslateChain that also accepts structural
// segments anywhere in the chain.
func (b *Branch) TranslateChainOrPass(path string) (string, error) {
	return b.translateChain("tree.TranslateChainOrPass", path, true)
}

// Resolve returns the direct child at a single structural segment.
func (b *Branch) Resolve(address string) (*Branch, error) {
	const op = "tree.Resolve"
	seg, err := parseSegment(op, address)
	if err != nil {
		return nil, err
	}
	return b.lookup(op, seg)
}

// ResolveOrPass resolves a single structural segment or registered name.
func (b *Branch) ResolveOrPass(token string) (*Branch, error) {
	return b.resolveOrPass("tree.ResolveOrPass", token)
}

// ResolveChain walks a structural address such as "#p0/#r3" down from b.
func (b *Branch) ResolveChain(path string) (*Branch, error) {
	const op = "tree.ResolveChain"
	return b.walk(path, func(cur *Branch, token string) (*Branch, error) {
		seg, err := parseSegment(op, token)
		if err != nil {
			return nil, err
		}
		return cur.lookup(op, seg)
	})
}

// ResolveChainOrPass walks a chain that may mix structural segments and
// registered names.
func (b *Branch) ResolveChainOrPass(path string) (*Branch, error) {
	const op = "tree.ResolveChainOrPass"
	return b.walk(path, func(cur *Branch, token string) (*Branch, error) {
		return cur.resolveOrPass(op, token)
	})
}

// Locate walks a parsed address down from b.
func (b *Branch) Locate(addr Address) (*Branch, error) {
	const op = "tree.Locate"
	cur := b
	for _, seg := range addr {
		next, err := cur.lookup(op, seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	if _, err := cur.live(op); err != nil {
		return nil, err
	}
	return cur, nil
}

// Exists reports whether token resolves from b. It accepts everything
// ResolveChainOrPass accepts.
func (b *Branch) Exists(token string) bool {
	_, err := b.ResolveChainOrPass(token)
	return err == nil
}

func (b *Branch) translate(op, name string) (Segment, error) {
	n, err := b.live(op)
	if err != nil {
		return Segment{}, err
	}
	seg, ok := n.register[name]
	if !ok {
		return Segment{}, errors.New(op, errors.KindResolution, name, errors.ErrUnknownKey,
			"the key %q is not in the register", name)
	}
	return seg, nil
}

func (b *Branch) translateOrPass(op, token string) (string, error) {
	if _, err := b.live(op); err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New(op, errors.KindResolution, "", errors.ErrMissingSegment, "there is no key")
	}
	if IsStructural(token) {
		return token, nil
	}
	seg, err := b.translate(op, token)
	if err != nil {
		return "", err
	}
	return seg.String(), nil
}

// translateChain builds the structural form of path one level at a time.
// The first failure is returned as is.
func (b *Branch) translateChain(op, path string, pass bool) (string, error) {
	var parts []string
	cur := b
	rest := path
	for {
		head, tail, more := strings.Cut(rest, "/")

		var addr string
		if pass {
			a, err := cur.translateOrPass(op, head)
			if err != nil {
				return "", err
			}
			addr = a
		} else {
			seg, err := cur.translate(op, head)
			if err != nil {
				return "", err
			}
			addr = seg.String()
		}
		parts = append(parts, addr)
		if !more {
			return strings.Join(parts, "/"), nil
		}

		seg, err := parseSegment(op, addr)
		if err != nil {
			return "", err
		}
		next, err := cur.lookup(op, seg)
		if err != nil {
			return "", err
		}
		cur, rest = next, tail
	}
}

func (b *Branch) resolveOrPass(op, token string) (*Branch, error) {
	if _, err := b.live(op); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.New(op, errors.KindResolution, "", errors.ErrMissingSegment, "there is no key")
	}
	var (
		seg Segment
		err error
	)
	if IsStructural(token) {
		seg, err = parseSegment(op, token)
	} else {
		seg, err = b.translate(op, token)
	}
	if err != nil {
		return nil, err
	}
	return b.lookup(op, seg)
}

// walk applies step to each "/"-separated token of path, descending one
// level per token.
func (b *Branch) walk(path string, step func(cur *Branch, token string) (*Branch, error)) (*Branch, error) {
	cur := b
	rest := path
	for {
		head, tail, more := strings.Cut(rest, "/")
		next, err := step(cur, head)
		if err != nil {
			return nil, err
		}
		if !more {
			return next, nil
		}
		cur, rest = next, tail
	}
}

// lookup returns the child stored under seg.
func (b *Branch) lookup(op string, seg Segment) (*Branch, error) {
	n, err := b.live(op)
	if err != nil {
		return nil, err
	}
	id, ok := n.childID(seg)
	if !ok {
		if seg.Class == Permanent {
			return nil, errors.New(op, errors.KindResolution, seg.String(), errors.ErrOutOfRange,
				"permanent branch with index %d does not exist", seg.Index)
		}
		return nil, errors.New(op, errors.KindResolution, seg.String(), errors.ErrOutOfRange,
			"removable branch with slot %d does not exist", seg.Index)
	}
	return b.handle(id), nil
}
