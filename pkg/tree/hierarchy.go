package tree

import (
	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/graphics"
	"github.com/go-drift/hierarchy/pkg/layout"
)

const (
	rootName  = "ROOT"
	rootLabel = "#ROOT"
)

// Hierarchy owns the root branch and the surface it is laid out on.
type Hierarchy struct {
	// Width and Height are the current surface dimensions, supplied by the
	// driver before each Update.
	Width  float64
	Height float64

	label     string
	arena     *arena
	rootID    nodeID
	layoutErr *errors.TreeError
}

// Option configures a Hierarchy created with New.
type Option func(*Hierarchy)

// WithRootLabel sets the label that heads Map and MapDebug.
func WithRootLabel(label string) Option {
	return func(h *Hierarchy) {
		h.label = label
	}
}

// WithSurface sets the initial surface dimensions.
func WithSurface(width, height float64) Option {
	return func(h *Hierarchy) {
		h.Width, h.Height = width, height
	}
}

// WithPalette sets the palette used by the diagnostic sketches.
func WithPalette(p Palette) Option {
	return func(h *Hierarchy) {
		h.arena.palette = p
	}
}

// WithPlainSketch disables sketch styling.
func WithPlainSketch() Option {
	return WithPalette(PlainPalette())
}

// SurfaceSource supplies the current surface size, typically a window.
type SurfaceSource interface {
	Size() graphics.Size
}

// New creates a hierarchy whose root spans the whole surface.
func New(opts ...Option) *Hierarchy {
	a := &arena{palette: DefaultPalette()}
	root := newNode(0, true, rootName, "", layout.Fill())
	h := &Hierarchy{
		label:  rootLabel,
		arena:  a,
		rootID: a.insert(root),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// root gives package-internal access to the root branch.
func (h *Hierarchy) root() *Branch {
	return &Branch{arena: h.arena, id: h.rootID}
}

// SetSurface records new surface dimensions. They apply on the next Update.
func (h *Hierarchy) SetSurface(width, height float64) {
	h.Width, h.Height = width, height
}

// Update lays out the whole tree from the origin using the current surface.
// A panic raised by a layout is reported to the error handler instead of
// propagating, and is kept until the next Update (see Err).
func (h *Hierarchy) Update() {
	h.layoutErr = nil
	defer errors.RecoverWithCallback("tree.Hierarchy.Update", func(p *errors.PanicError) {
		h.layoutErr = errors.FromPanic(p)
	})
	h.root().ApplyLayout(graphics.Offset{}, h.Width, h.Height)
}

// Err returns the panic recovered by the last Update as a KindPanic error,
// or nil if that pass completed.
func (h *Hierarchy) Err() error {
	if h.layoutErr == nil {
		return nil
	}
	return h.layoutErr
}

// Drive reads the surface size from src and runs Update. It is meant to be
// called once per frame or resize.
func (h *Hierarchy) Drive(src SurfaceSource) {
	size := src.Size()
	h.SetSurface(size.Width, size.Height)
	h.Update()
}

// Map renders the named-branch sketch of the whole tree.
func (h *Hierarchy) Map() string {
	return h.arena.renderSketch(h.label, h.arena.get(h.rootID), false)
}

// MapDebug renders the full-tree sketch with visibility details.
func (h *Hierarchy) MapDebug() string {
	return h.arena.renderSketch(h.label, h.arena.get(h.rootID), true)
}

// Paths lists the display path of every branch, depth first.
func (h *Hierarchy) Paths() []string {
	return h.root().Paths()
}

// Len returns the number of live branches, the root included.
func (h *Hierarchy) Len() int {
	return h.arena.live
}

// Create adds a child under the branch at parentPath ("" for the root) and
// returns the path that reaches it. A non-empty name creates a named,
// removable branch; an empty name creates an anonymous permanent one.
func (h *Hierarchy) Create(parentPath, name string, l layout.PositionLayout) (string, error) {
	parent, err := h.locate(parentPath)
	if err != nil {
		return "", err
	}
	token, err := parent.CreateNamedChild(name, l)
	if err != nil {
		return "", err
	}
	return joinPath(parentPath, token), nil
}

// Resolve returns the branch at path. Path segments may be names or
// structural addresses.
func (h *Hierarchy) Resolve(path string) (*Branch, error) {
	return h.root().ResolveChainOrPass(path)
}

// Exists reports whether path resolves.
func (h *Hierarchy) Exists(path string) bool {
	return h.root().Exists(path)
}

// Translate returns the structural form of path.
func (h *Hierarchy) Translate(path string) (string, error) {
	return h.root().TranslateChainOrPass(path)
}

// Destroy destroys the removable branch at path, leaving registers as they
// are.
func (h *Hierarchy) Destroy(path string) error {
	return h.root().DestroyChainOrPass(path)
}

// Remove destroys the branch registered under the last name of path and
// removes that name from its parent's register.
func (h *Hierarchy) Remove(path string) error {
	return h.root().RemoveChainOrPass(path)
}

func (h *Hierarchy) locate(path string) (*Branch, error) {
	if path == "" {
		return h.root(), nil
	}
	return h.root().ResolveChainOrPass(path)
}
