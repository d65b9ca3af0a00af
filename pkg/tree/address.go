package tree

import (
	"strconv"
	"strings"

	"github.com/go-drift/hierarchy/pkg/errors"
)

// Class is the storage class of a structural address segment.
type Class byte

const (
	// Permanent marks a segment indexing the append-only child sequence.
	Permanent Class = 'p'
	// Removable marks a segment naming a removable child slot.
	Removable Class = 'r'
)

// Segment is one level of a structural address.
type Segment struct {
	Class Class
	Index int
}

// String renders the segment as "#p<index>" or "#r<slot>".
func (s Segment) String() string {
	return "#" + string(s.Class) + strconv.Itoa(s.Index)
}

// Address is a parsed chain of structural segments, outermost first.
type Address []Segment

func (a Address) String() string {
	parts := make([]string, len(a))
	for i, s := range a {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// IsStructural reports whether token is written in structural form.
func IsStructural(token string) bool {
	return strings.HasPrefix(token, "#")
}

// ParseSegment parses a single "#p<n>" or "#r<n>" token.
func ParseSegment(token string) (Segment, error) {
	return parseSegment("tree.ParseSegment", token)
}

// ParseAddress parses a "/"-separated chain of structural segments.
func ParseAddress(path string) (Address, error) {
	var addr Address
	for _, token := range strings.Split(path, "/") {
		seg, err := parseSegment("tree.ParseAddress", token)
		if err != nil {
			return nil, err
		}
		addr = append(addr, seg)
	}
	return addr, nil
}

func parseClass(op, token string) (Class, error) {
	if token == "" {
		return 0, errors.New(op, errors.KindResolution, "", errors.ErrMissingSegment, "there is no key")
	}
	if len(token) < 2 {
		return 0, errors.New(op, errors.KindResolution, token, errors.ErrMissingSegment,
			"path %q is missing information (example: #r12)", token)
	}
	if token[0] != '#' {
		return 0, errors.New(op, errors.KindResolution, token, errors.ErrInvalidClass,
			"path %q is not structural, it must start with '#'", token)
	}
	switch c := Class(token[1]); c {
	case Permanent, Removable:
		return c, nil
	default:
		return 0, errors.New(op, errors.KindResolution, token, errors.ErrInvalidClass,
			"the second character %q in %q needs to be either 'r' or 'p'", token[1], token)
	}
}

func parseSegment(op, token string) (Segment, error) {
	class, err := parseClass(op, token)
	if err != nil {
		return Segment{}, err
	}
	index, ok := parseIndex(token[2:])
	if !ok {
		return Segment{}, errors.New(op, errors.KindResolution, token, errors.ErrMalformedIndex,
			"the path %q is not a valid number", token)
	}
	return Segment{Class: class, Index: index}, nil
}

// parseIndex accepts only plain decimal digits.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// splitLast splits path at its final "/".
func splitLast(path string) (parent, last string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "/" + child
}
