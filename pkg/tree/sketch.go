package tree

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/hierarchy/pkg/graphics"
)

// danglingMarker tags register entries whose child no longer exists.
const danglingMarker = "#[! Dangling register pointer !]"

// Palette styles the diagnostic sketches. Styling is cosmetic: with Plain
// set, or on a terminal without color, the text is identical.
type Palette struct {
	Header    lipgloss.Style
	Connector lipgloss.Style
	Name      lipgloss.Style
	Detail    lipgloss.Style
	Dangling  lipgloss.Style
	Permanent lipgloss.Style
	Removable lipgloss.Style

	// Plain disables styling entirely.
	Plain bool
}

// DefaultPalette returns the colored palette.
func DefaultPalette() Palette {
	fg := func(c graphics.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
	}
	return Palette{
		Header:    fg(graphics.ColorPurple).Bold(true).Underline(true),
		Connector: fg(graphics.ColorDimGray),
		Name:      fg(graphics.ColorYellow).Bold(true),
		Detail:    fg(graphics.ColorDimGray).Italic(true),
		Dangling:  fg(graphics.ColorRed).Bold(true),
		Permanent: fg(graphics.ColorSalmon).Bold(true),
		Removable: fg(graphics.ColorOrchid).Bold(true),
	}
}

// PlainPalette returns a palette that renders text unchanged.
func PlainPalette() Palette {
	return Palette{Plain: true}
}

func (p Palette) render(style lipgloss.Style, text string) string {
	if p.Plain {
		return text
	}
	return style.Render(text)
}

// Sketch renders the subtree reachable through registered names, headed by
// b's name. Register entries that no longer resolve are skipped.
func (b *Branch) Sketch() string {
	n := b.node()
	if n == nil {
		return ""
	}
	return b.arena.renderSketch(n.name, n, false)
}

// SketchDebug renders the full subtree with visibility details. Registered
// children are listed by name first, then every remaining permanent and
// removable child by address.
func (b *Branch) SketchDebug() string {
	n := b.node()
	if n == nil {
		return ""
	}
	return b.arena.renderSketch(n.name, n, true)
}

// renderSketch writes the styled header label followed by the sketch of n.
func (a *arena) renderSketch(label string, n *node, debug bool) string {
	var sb strings.Builder
	sb.WriteString(a.palette.render(a.palette.Header, label))
	if debug {
		a.sketchDebug(&sb, n, 0)
	} else {
		a.sketch(&sb, n, 0)
	}
	return sb.String()
}

// connector is the indentation drawn before a child label. The line break
// stays outside styling so multi-line padding never applies.
func connector(level int) string {
	return "  " + strings.Repeat("|    ", level) + "|-> "
}

func (p Palette) writeConnector(sb *strings.Builder, level int) {
	sb.WriteString("\n")
	sb.WriteString(p.render(p.Connector, connector(level)))
}

func registeredNames(n *node) []string {
	return slices.Sorted(maps.Keys(n.register))
}

func (a *arena) childAt(n *node, seg Segment) *node {
	id, ok := n.childID(seg)
	if !ok {
		return nil
	}
	return a.get(id)
}

func (a *arena) sketch(sb *strings.Builder, n *node, level int) {
	p := a.palette
	for _, name := range registeredNames(n) {
		child := a.childAt(n, n.register[name])
		if child == nil {
			continue
		}
		p.writeConnector(sb, level)
		sb.WriteString(p.render(p.Name, name))
		a.sketch(sb, child, level+1)
	}
}

func (a *arena) sketchDebug(sb *strings.Builder, n *node, level int) {
	p := a.palette
	sb.WriteString(p.render(p.Detail,
		fmt.Sprintf(" - [%s] [%d] | (%t/%t)", n.name, n.depth, n.visible, n.parentVisible)))

	done := make(map[Segment]bool)
	for _, name := range registeredNames(n) {
		seg := n.register[name]
		p.writeConnector(sb, level)
		child := a.childAt(n, seg)
		if child == nil {
			sb.WriteString(p.render(p.Dangling, name+" "+danglingMarker))
			continue
		}
		sb.WriteString(p.render(p.Name, name))
		sb.WriteString(" (" + seg.String() + ")")
		a.sketchDebug(sb, child, level+1)
		done[seg] = true
	}

	for i, id := range n.permanent {
		seg := Segment{Class: Permanent, Index: i}
		if done[seg] {
			continue
		}
		if child := a.get(id); child != nil {
			p.writeConnector(sb, level)
			sb.WriteString(p.render(p.Permanent, seg.String()))
			a.sketchDebug(sb, child, level+1)
		}
	}
	for _, slot := range n.removableSlots() {
		seg := Segment{Class: Removable, Index: slot}
		if done[seg] {
			continue
		}
		if child := a.get(n.removable[slot]); child != nil {
			p.writeConnector(sb, level)
			sb.WriteString(p.render(p.Removable, seg.String()))
			a.sketchDebug(sb, child, level+1)
		}
	}
}
