package tree

import (
	"slices"
	"testing"

	"github.com/go-drift/hierarchy/pkg/errors"
)

func TestCreateChild(t *testing.T) {
	h := New()
	root := h.root()

	tests := []struct {
		removable bool
		name      string
		want      string
	}{
		{false, "", "#p0"},
		{true, "", "#r0"},
		{false, "title", "#p1"},
		{true, "", "#r1"},
	}
	for _, tt := range tests {
		got, err := root.CreateChild(tt.removable, nil, tt.name)
		if err != nil {
			t.Fatalf("CreateChild error: %v", err)
		}
		if got != tt.want {
			t.Errorf("CreateChild(%v, %q) = %q, want %q", tt.removable, tt.name, got, tt.want)
		}
	}

	title, err := root.Resolve("#p1")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if title.Name() != "title" || title.Depth() != 1 {
		t.Errorf("child = %q depth %d, want title depth 1", title.Name(), title.Depth())
	}
	anon, _ := root.Resolve("#r1")
	if anon.Name() != "#r1" {
		t.Errorf("anonymous child name = %q, want #r1", anon.Name())
	}
	if len(root.node().register) != 0 {
		t.Error("CreateChild must not register names")
	}
}

func TestCreateNamedChild(t *testing.T) {
	h := New()
	root := h.root()

	name, err := root.CreateNamedChild("menu", nil)
	if err != nil || name != "menu" {
		t.Fatalf("CreateNamedChild = %q, %v, want menu", name, err)
	}
	addr, err := root.Translate("menu")
	if err != nil || addr != "#r0" {
		t.Errorf("Translate(menu) = %q, %v, want #r0", addr, err)
	}

	anon, err := root.CreateNamedChild("", nil)
	if err != nil || anon != "#p0" {
		t.Errorf("anonymous CreateNamedChild = %q, %v, want #p0", anon, err)
	}
	if _, err := root.ResolveOrPass(anon); err != nil {
		t.Errorf("returned handle %q should resolve: %v", anon, err)
	}
}

func TestCreateNamedChildCollision(t *testing.T) {
	h := buildMenu(t)
	root := h.root()
	before := h.MapDebug()
	live := h.Len()

	_, err := root.CreateNamedChild("menu", nil)
	if !errors.Is(err, errors.ErrDuplicateKey) {
		t.Fatalf("error = %v, want ErrDuplicateKey", err)
	}
	if errors.KindOf(err) != errors.KindCollision {
		t.Errorf("kind = %v, want collision", errors.KindOf(err))
	}
	if got := h.MapDebug(); got != before {
		t.Errorf("tree changed after collision:\n%s\nwant\n%s", got, before)
	}
	if h.Len() != live {
		t.Errorf("Len() = %d, want %d", h.Len(), live)
	}

	// The slot a failed create might have taken is still the next one.
	addr, _ := root.CreateChild(true, nil, "")
	if addr != "#r2" {
		t.Errorf("next removable = %q, want #r2", addr)
	}
}

func TestCreateNamedChildInvalidName(t *testing.T) {
	h := New()
	root := h.root()
	for _, name := range []string{"#r0", "#menu", "a/b"} {
		_, err := root.CreateNamedChild(name, nil)
		if !errors.Is(err, errors.ErrInvalidName) {
			t.Errorf("CreateNamedChild(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestDestroyPermanentRejected(t *testing.T) {
	h := buildMenu(t)
	menu, _ := h.Resolve("menu")
	for _, addr := range []string{"#p0", "#p999", "#p", "#pxyz"} {
		err := menu.Destroy(addr)
		if !errors.Is(err, errors.ErrPermanent) || errors.KindOf(err) != errors.KindStructure {
			t.Errorf("Destroy(%q) error = %v, want structural ErrPermanent", addr, err)
		}
	}
	if !h.Exists("menu/#p0") {
		t.Error("permanent child was destroyed")
	}
}

func TestDestroyErrors(t *testing.T) {
	h := buildMenu(t)
	root := h.root()
	tests := []struct {
		address string
		wantErr error
	}{
		{"#r9", errors.ErrOutOfRange},
		{"#rx", errors.ErrMalformedIndex},
		{"#x0", errors.ErrInvalidClass},
		{"", errors.ErrMissingSegment},
	}
	for _, tt := range tests {
		if err := root.Destroy(tt.address); !errors.Is(err, tt.wantErr) {
			t.Errorf("Destroy(%q) error = %v, want %v", tt.address, err, tt.wantErr)
		}
	}
}

func TestDestroySubtree(t *testing.T) {
	h := buildMenu(t)
	if _, err := h.Create("menu/play", "level", nil); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if h.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", h.Len())
	}
	play, _ := h.Resolve("menu/play")
	level, _ := h.Resolve("menu/play/level")

	if err := h.Destroy("menu"); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if play.Valid() || level.Valid() {
		t.Error("descendants of a destroyed branch should be gone")
	}
	want := []string{"about"}
	if got := h.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestDestroyLeavesDanglingRegister(t *testing.T) {
	h := buildMenu(t)
	root := h.root()

	if err := root.Destroy("#r1"); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	// The name still translates; the address no longer resolves.
	addr, err := root.Translate("about")
	if err != nil || addr != "#r1" {
		t.Errorf("Translate(about) = %q, %v, want #r1", addr, err)
	}
	if _, err := root.ResolveOrPass("about"); !errors.Is(err, errors.ErrOutOfRange) {
		t.Errorf("ResolveOrPass(about) error = %v, want ErrOutOfRange", err)
	}
}

func TestDestroyByName(t *testing.T) {
	h := buildMenu(t)
	root := h.root()

	if err := root.DestroyByName("about"); err != nil {
		t.Fatalf("DestroyByName error: %v", err)
	}
	if _, err := root.Translate("about"); !errors.Is(err, errors.ErrUnknownKey) {
		t.Errorf("register entry should be gone, Translate error = %v", err)
	}

	err := root.DestroyByName("about")
	if !errors.Is(err, errors.ErrUnknownKey) {
		t.Fatalf("second DestroyByName error = %v, want ErrUnknownKey", err)
	}
	want := `tree.DestroyByName [resolution] address=about: unknown register key: widget registered as "about" does not exist`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDestroyByNameKeepsRegisterOnFailure(t *testing.T) {
	h := buildMenu(t)
	root := h.root()
	if err := root.Destroy("#r1"); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}
	if err := root.DestroyByName("about"); !errors.Is(err, errors.ErrOutOfRange) {
		t.Fatalf("DestroyByName on dangling entry error = %v, want ErrOutOfRange", err)
	}
	if _, err := root.Translate("about"); err != nil {
		t.Errorf("register entry should survive a failed destroy: %v", err)
	}
}

func TestRemovableSlotReuse(t *testing.T) {
	h := New()
	root := h.root()
	for i := 0; i < 4; i++ {
		if _, err := root.CreateChild(true, nil, ""); err != nil {
			t.Fatalf("CreateChild error: %v", err)
		}
	}
	for _, addr := range []string{"#r2", "#r0"} {
		if err := root.Destroy(addr); err != nil {
			t.Fatalf("Destroy(%q) error: %v", addr, err)
		}
	}
	for _, want := range []string{"#r0", "#r2", "#r4"} {
		got, _ := root.CreateChild(true, nil, "")
		if got != want {
			t.Errorf("CreateChild = %q, want %q", got, want)
		}
	}
}

func TestChainDestroyAndRemove(t *testing.T) {
	h := buildMenu(t)

	if err := h.Destroy("menu/#p0"); !errors.Is(err, errors.ErrPermanent) {
		t.Errorf("Destroy(menu/#p0) error = %v, want ErrPermanent", err)
	}
	if err := h.Destroy("menu/play"); err != nil {
		t.Fatalf("Destroy(menu/play) error: %v", err)
	}
	menu, _ := h.Resolve("menu")
	if _, err := menu.Translate("play"); err != nil {
		t.Errorf("Destroy should leave the register entry: %v", err)
	}

	if err := h.Remove("menu/play"); !errors.Is(err, errors.ErrOutOfRange) {
		t.Errorf("Remove of dangling entry error = %v, want ErrOutOfRange", err)
	}
	if err := h.Remove("ghost/play"); !errors.Is(err, errors.ErrUnknownKey) {
		t.Errorf("Remove under missing parent error = %v, want ErrUnknownKey", err)
	}
	if err := h.Remove("about"); err != nil {
		t.Fatalf("Remove(about) error: %v", err)
	}
	if h.Exists("about") {
		t.Error("about should be gone")
	}
}
