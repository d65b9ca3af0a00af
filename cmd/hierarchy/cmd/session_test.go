package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/hierarchy/pkg/errors"
	"github.com/go-drift/hierarchy/pkg/graphics"
	"github.com/go-drift/hierarchy/pkg/layout"
	"github.com/go-drift/hierarchy/pkg/tree"
)

func newTestSession() (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return NewSession(tree.New(tree.WithPlainSketch()), &out), &out
}

// exec runs lines and returns what the last one printed.
func exec(t *testing.T, s *Session, out *bytes.Buffer, lines ...string) string {
	t.Helper()
	for _, line := range lines {
		out.Reset()
		require.True(t, s.Handle(line), "session ended at %q", line)
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func TestSessionLayout(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out,
		"surface 800 600",
		"create . menu relative 0 0 50 100",
		"create menu play window 10 20 100 50",
		"anon menu",
		"update",
	)

	assert.Equal(t, "0 0 400 600", exec(t, s, out, "rect menu"))
	assert.Equal(t, "10 20 100 50", exec(t, s, out, "rect menu/play"))
	assert.Equal(t, "0 0 400 600", exec(t, s, out, "rect menu/#p0"))
}

func TestSessionCreateOutput(t *testing.T) {
	s, out := newTestSession()
	assert.Equal(t, "created menu", exec(t, s, out, "create . menu"))
	assert.Equal(t, "created menu/#p0", exec(t, s, out, "anon menu"))
	assert.Equal(t, "created menu/#p0/deep", exec(t, s, out, "create menu/#p0 deep"))
}

func TestSessionInspection(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out, "create . menu", "create menu play", "anon menu")

	assert.Equal(t, "menu\nmenu/#p0\nmenu/play", exec(t, s, out, "paths"))
	assert.Equal(t, "#ROOT\n  |-> menu\n  |    |-> play", exec(t, s, out, "map"))
	assert.Equal(t, "#r0/#r0", exec(t, s, out, "translate menu/play"))
	assert.Equal(t, "true", exec(t, s, out, "exists menu/#p0"))
	assert.Equal(t, "false", exec(t, s, out, "exists menu/#p1"))

	debug := exec(t, s, out, "debug")
	assert.Contains(t, debug, "  |-> menu (#r0) - [menu] [1] | (true/true)")
	assert.Contains(t, debug, "  |    |-> #p0 - [#p0] [2] | (true/true)")
}

func TestSessionDestroyAndRemove(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out, "create . menu", "create menu play", "anon menu")

	got := exec(t, s, out, "destroy menu/#p0")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "permanent branches cannot be destroyed directly")

	assert.Equal(t, "destroyed menu/play", exec(t, s, out, "destroy menu/play"))
	assert.Contains(t, exec(t, s, out, "debug"), "play #[! Dangling register pointer !]")

	assert.Equal(t, "removed menu", exec(t, s, out, "remove menu"))
	assert.Equal(t, "false", exec(t, s, out, "exists menu"))
	assert.Equal(t, 1, s.Hierarchy().Len())
}

func TestSessionVisibilityAndFocus(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out, "create . menu", "create menu play", "hide menu")

	play, err := s.Hierarchy().Resolve("menu/play")
	require.NoError(t, err)
	assert.False(t, play.IsVisible())
	assert.True(t, play.Visible())

	exec(t, s, out, "show menu")
	assert.True(t, play.IsVisible())

	assert.Equal(t, "menu/play layer 2.5", exec(t, s, out, "focus menu/play"))
	assert.Equal(t, "menu/play layer 2", exec(t, s, out, "focus menu/play off"))
	assert.Contains(t, exec(t, s, out, "focus menu/play maybe"), "Error:")
}

func TestSessionData(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out,
		"create . slider",
		"set slider value 0.25",
		"set slider enabled true",
		"set slider origin 1,2",
		"set slider tint 1,0.5,0,1",
		"set slider label Master volume",
	)

	tests := map[string]string{
		"value":   "0.25",
		"enabled": "true",
		"origin":  "1,2",
		"tint":    "1,0.5,0,1",
		"label":   "Master volume",
	}
	for key, want := range tests {
		assert.Equal(t, want, exec(t, s, out, "get slider "+key), key)
	}
	assert.Contains(t, exec(t, s, out, "get slider missing"), "Error:")
}

func TestSessionSetReplacesType(t *testing.T) {
	s, out := newTestSession()
	exec(t, s, out, "create . menu", "set menu x true", "set menu x 5")
	assert.Equal(t, "5", exec(t, s, out, "get menu x"))

	exec(t, s, out, "set menu x 1,2")
	assert.Equal(t, "1,2", exec(t, s, out, "get menu x"))

	exec(t, s, out, "set menu x hello")
	assert.Equal(t, "hello", exec(t, s, out, "get menu x"))

	menu, err := s.Hierarchy().Resolve("menu")
	require.NoError(t, err)
	assert.Equal(t, 1, menu.Data().Len())
}

type explodingLayout struct{}

func (explodingLayout) Compute(graphics.Rect) graphics.Rect {
	panic("boom")
}

func TestSessionUpdateReportsLayoutPanic(t *testing.T) {
	errors.SetHandler(&errors.LogHandler{Out: io.Discard})
	defer errors.SetHandler(nil)

	s, out := newTestSession()
	_, err := s.Hierarchy().Create("", "bad", explodingLayout{})
	require.NoError(t, err)

	got := exec(t, s, out, "update")
	assert.Contains(t, got, "Error:")
	assert.Contains(t, got, "[panic]")
	assert.Contains(t, got, "boom")

	exec(t, s, out, "remove bad")
	assert.Equal(t, "", exec(t, s, out, "update"))
}

func TestSessionErrors(t *testing.T) {
	s, out := newTestSession()

	assert.Contains(t, exec(t, s, out, "frobnicate"), "Unknown command: frobnicate")
	assert.Equal(t, "Usage: create PARENT NAME [LAYOUT]", exec(t, s, out, "create ."))
	assert.Contains(t, exec(t, s, out, "create . box spiral 1 2"), `unknown layout "spiral"`)
	assert.Contains(t, exec(t, s, out, "create . box window 1 2"), "takes 4 numbers")
	assert.Contains(t, exec(t, s, out, "surface wide 10"), "is not a number")
	assert.Contains(t, exec(t, s, out, "rect ghost"), "unknown register key")
	assert.Equal(t, "", exec(t, s, out, "// comment"))
}

func TestSessionRun(t *testing.T) {
	s, out := newTestSession()
	script := "create . menu\n\nquit\ncreate . never\n"

	require.NoError(t, s.Run(strings.NewReader(script), ""))
	assert.Equal(t, "created menu\n", out.String())
	assert.False(t, s.Hierarchy().Exists("never"))
}

func TestSessionRunWithoutTrailingNewline(t *testing.T) {
	s, out := newTestSession()
	require.NoError(t, s.Run(strings.NewReader("create . menu"), "> "))
	assert.Equal(t, "> created menu\n", out.String())
}

func TestParseLayout(t *testing.T) {
	l, err := parseLayout(nil)
	require.NoError(t, err)
	assert.Nil(t, l)

	l, err = parseLayout([]string{"solid", "16", "9"})
	require.NoError(t, err)
	assert.IsType(t, &layout.Solid{}, l)
}
