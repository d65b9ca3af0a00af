package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"

	"github.com/go-drift/hierarchy/pkg/data"
	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/layout"
	"github.com/go-drift/hierarchy/pkg/tree"
)

// rootToken names the root as a parent in create and anon.
const rootToken = "."

// Session executes line-oriented commands against one hierarchy.
type Session struct {
	h   *tree.Hierarchy
	out io.Writer

	// Verbose also reports tree errors to the global error handler.
	Verbose bool
}

type sessionCommand struct {
	usage   string
	minArgs int
	run     func(s *Session, args []string) error
}

var sessionCommands map[string]sessionCommand

func init() {
	sessionCommands = map[string]sessionCommand{
		"create":    {"create PARENT NAME [LAYOUT]", 2, (*Session).cmdCreate},
		"anon":      {"anon PARENT [LAYOUT]", 1, (*Session).cmdAnon},
		"destroy":   {"destroy PATH", 1, (*Session).cmdDestroy},
		"remove":    {"remove PATH", 1, (*Session).cmdRemove},
		"surface":   {"surface W H", 2, (*Session).cmdSurface},
		"update":    {"update", 0, (*Session).cmdUpdate},
		"rect":      {"rect PATH", 1, (*Session).cmdRect},
		"hide":      {"hide PATH", 1, (*Session).cmdHide},
		"show":      {"show PATH", 1, (*Session).cmdShow},
		"focus":     {"focus PATH [on|off]", 1, (*Session).cmdFocus},
		"paths":     {"paths", 0, (*Session).cmdPaths},
		"map":       {"map", 0, (*Session).cmdMap},
		"debug":     {"debug", 0, (*Session).cmdDebug},
		"translate": {"translate PATH", 1, (*Session).cmdTranslate},
		"exists":    {"exists PATH", 1, (*Session).cmdExists},
		"set":       {"set PATH KEY VALUE", 3, (*Session).cmdSet},
		"get":       {"get PATH KEY", 2, (*Session).cmdGet},
	}
}

// NewSession creates a session writing its output to out.
func NewSession(h *tree.Hierarchy, out io.Writer) *Session {
	return &Session{h: h, out: out}
}

// Hierarchy returns the tree the session operates on.
func (s *Session) Hierarchy() *tree.Hierarchy {
	return s.h
}

// Run reads commands from in until EOF or quit. A non-empty prompt is
// printed before each line.
func (s *Session) Run(in io.Reader, prompt string) error {
	reader := bufio.NewReader(in)
	for {
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}
		line, err := reader.ReadString('\n')
		if line != "" && !s.Handle(line) {
			return nil
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Handle executes one command line. It returns false when the session
// should end.
func (s *Session) Handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "//") {
		return true
	}
	parts := strings.Fields(line)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	switch name {
	case "quit", "exit":
		return false
	case "help":
		s.printHelp()
		return true
	}

	c, ok := sessionCommands[name]
	if !ok {
		fmt.Fprintf(s.out, "Unknown command: %s. Type 'help' for available commands.\n", name)
		return true
	}
	if len(args) < c.minArgs {
		fmt.Fprintf(s.out, "Usage: %s\n", c.usage)
		return true
	}
	if err := c.run(s, args); err != nil {
		s.report(err)
	}
	return true
}

func (s *Session) report(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
	var te *errors.TreeError
	if s.Verbose && errors.As(err, &te) {
		if te.StackTrace == "" {
			te.StackTrace = errors.CaptureStack()
		}
		errors.Report(te)
	}
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `
Available Commands:
-------------------

STRUCTURE:
  create PARENT NAME [LAYOUT]   Create a named removable branch ("." is the root)
  anon PARENT [LAYOUT]          Create an anonymous permanent branch
  destroy PATH                  Destroy a branch, keeping register entries
  remove PATH                   Destroy a named branch and unregister it

LAYOUT:
  surface W H                   Set the surface size
  update                        Lay out the whole tree
  rect PATH                     Show the computed rectangle (left top width height)

  LAYOUT is one of:
    relative X1 Y1 X2 Y2        Corners in percent of the parent
    window X Y W H              Position and size in pixels
    solid W H                   Fixed aspect ratio, centered

STATE:
  hide PATH / show PATH         Change own visibility
  focus PATH [on|off]           Change the focus flag
  set PATH KEY VALUE            Store a float, bool, vector (x,y[,z[,w]]) or string
  get PATH KEY                  Read a stored value

INSPECTION:
  paths                         List every branch path
  map                           Sketch named branches
  debug                         Sketch every branch with visibility
  translate PATH                Show the structural address of PATH
  exists PATH                   Report whether PATH resolves

OTHER:
  help                          Show this help message
  quit, exit                    End the session
`)
}

func parentPath(token string) string {
	if token == rootToken {
		return ""
	}
	return token
}

func (s *Session) cmdCreate(args []string) error {
	l, err := parseLayout(args[2:])
	if err != nil {
		return err
	}
	path, err := s.h.Create(parentPath(args[0]), args[1], l)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "created %s\n", path)
	return nil
}

func (s *Session) cmdAnon(args []string) error {
	l, err := parseLayout(args[1:])
	if err != nil {
		return err
	}
	path, err := s.h.Create(parentPath(args[0]), "", l)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "created %s\n", path)
	return nil
}

func (s *Session) cmdDestroy(args []string) error {
	if err := s.h.Destroy(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "destroyed %s\n", args[0])
	return nil
}

func (s *Session) cmdRemove(args []string) error {
	if err := s.h.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "removed %s\n", args[0])
	return nil
}

func (s *Session) cmdSurface(args []string) error {
	nums, err := parseFloats(args[:2])
	if err != nil {
		return err
	}
	if nums[0] < 0 || nums[1] < 0 {
		return fmt.Errorf("surface size must not be negative")
	}
	s.h.SetSurface(nums[0], nums[1])
	return nil
}

func (s *Session) cmdUpdate([]string) error {
	s.h.Update()
	return s.h.Err()
}

func (s *Session) cmdRect(args []string) error {
	b, err := s.h.Resolve(args[0])
	if err != nil {
		return err
	}
	r := b.Container().Position()
	fmt.Fprintf(s.out, "%g %g %g %g\n", r.Left, r.Top, r.Width(), r.Height())
	return nil
}

func (s *Session) cmdHide(args []string) error {
	return s.setVisible(args[0], false)
}

func (s *Session) cmdShow(args []string) error {
	return s.setVisible(args[0], true)
}

func (s *Session) setVisible(path string, visible bool) error {
	b, err := s.h.Resolve(path)
	if err != nil {
		return err
	}
	b.SetVisible(visible)
	return nil
}

func (s *Session) cmdFocus(args []string) error {
	b, err := s.h.Resolve(args[0])
	if err != nil {
		return err
	}
	focus := true
	if len(args) > 1 {
		switch args[1] {
		case "on":
		case "off":
			focus = false
		default:
			return fmt.Errorf("focus takes on or off, got %q", args[1])
		}
	}
	b.SetFocus(focus)
	fmt.Fprintf(s.out, "%s layer %g\n", args[0], b.LayerDepth())
	return nil
}

func (s *Session) cmdPaths([]string) error {
	for _, p := range s.h.Paths() {
		fmt.Fprintln(s.out, p)
	}
	return nil
}

func (s *Session) cmdMap([]string) error {
	fmt.Fprintln(s.out, s.h.Map())
	return nil
}

func (s *Session) cmdDebug([]string) error {
	fmt.Fprintln(s.out, s.h.MapDebug())
	return nil
}

func (s *Session) cmdTranslate(args []string) error {
	addr, err := s.h.Translate(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, addr)
	return nil
}

func (s *Session) cmdExists(args []string) error {
	fmt.Fprintln(s.out, s.h.Exists(args[0]))
	return nil
}

func (s *Session) cmdSet(args []string) error {
	b, err := s.h.Resolve(args[0])
	if err != nil {
		return err
	}
	setValue(b.EnsureData(), args[1], strings.Join(args[2:], " "))
	return nil
}

func (s *Session) cmdGet(args []string) error {
	b, err := s.h.Resolve(args[0])
	if err != nil {
		return err
	}
	v, ok := getValue(b.Data(), args[1])
	if !ok {
		return fmt.Errorf("%s has no value %q", args[0], args[1])
	}
	fmt.Fprintln(s.out, v)
	return nil
}

// setValue stores raw under the most specific type it parses as, replacing
// any value of another type held under key.
func setValue(d *data.Data, key, raw string) {
	d.Delete(key)
	switch raw {
	case "true", "false":
		d.SetBool(key, raw == "true")
		return
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		d.SetFloat(key, f)
		return
	}
	if parts := strings.Split(raw, ","); len(parts) >= 2 && len(parts) <= 4 {
		if v, err := parseFloats(parts); err == nil {
			switch len(v) {
			case 2:
				d.SetVec2(key, f64.Vec2{v[0], v[1]})
			case 3:
				d.SetVec3(key, f64.Vec3{v[0], v[1], v[2]})
			case 4:
				d.SetVec4(key, f64.Vec4{v[0], v[1], v[2], v[3]})
			}
			return
		}
	}
	d.SetString(key, raw)
}

func getValue(d *data.Data, key string) (string, bool) {
	if d == nil {
		return "", false
	}
	if v, ok := d.Bool(key); ok {
		return strconv.FormatBool(v), true
	}
	if v, ok := d.Float(key); ok {
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}
	if v, ok := d.Vec2(key); ok {
		return formatVec(v[:]), true
	}
	if v, ok := d.Vec3(key); ok {
		return formatVec(v[:]), true
	}
	if v, ok := d.Vec4(key); ok {
		return formatVec(v[:]), true
	}
	return d.String(key)
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// parseLayout reads an optional layout description. No arguments means the
// branch fills its parent.
func parseLayout(args []string) (layout.PositionLayout, error) {
	if len(args) == 0 {
		return nil, nil
	}
	kind, params := args[0], args[1:]
	want := map[string]int{"relative": 4, "window": 4, "solid": 2}
	n, ok := want[kind]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q (want relative, window or solid)", kind)
	}
	if len(params) != n {
		return nil, fmt.Errorf("layout %s takes %d numbers, got %d", kind, n, len(params))
	}
	v, err := parseFloats(params)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "relative":
		r := layout.Relative{}
		r.Relative1.X, r.Relative1.Y = v[0], v[1]
		r.Relative2.X, r.Relative2.Y = v[2], v[3]
		return r, nil
	case "window":
		w := layout.Window{WidthAbsolute: v[2], HeightAbsolute: v[3]}
		w.Absolute.X, w.Absolute.Y = v[0], v[1]
		return w, nil
	default:
		return &layout.Solid{Width: v[0], Height: v[1]}, nil
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		out[i] = f
	}
	return out, nil
}
