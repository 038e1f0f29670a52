package scene

import (
	"slices"
	"testing"
)

type marker struct{ name string }

func TestSceneFindAndComponents(t *testing.T) {
	s := New("scene")
	a, b := NewNode("a"), NewNode("b")
	s.Add(a)
	a.AddChild(b)
	a.AddComponent(&marker{"m1"})
	b.AddComponent("other")
	b.AddComponent(&marker{"m2"})

	if got := s.Find(b.ID()); got != b {
		t.Errorf("Find(b) = %v", got)
	}
	if got := s.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}

	ms := Components[*marker](s)
	if len(ms) != 2 || ms[0].name != "m1" || ms[1].name != "m2" {
		t.Errorf("Components() = %v", ms)
	}
}

func TestSceneDestroy(t *testing.T) {
	s := New("scene")
	n := NewNode("n")
	s.Add(n)
	s.Selection().Select(n.ID())

	if err := s.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if !n.Destroyed() {
		t.Error("child not destroyed")
	}
	if len(s.Selection().Selected()) != 0 {
		t.Error("selection not cleared")
	}
}

func TestSelection(t *testing.T) {
	sel := NewSelection()
	changes := 0
	sel.OnChange(func() { changes++ })

	sel.Select("a", "b", "a")
	if got := sel.Selected(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Selected() = %v, want [a b]", got)
	}
	sel.Select("b")
	sel.Deselect("a", "missing")
	if !sel.IsSelected("b") || sel.IsSelected("a") {
		t.Errorf("Selected() = %v, want [b]", sel.Selected())
	}

	sel.Focus("c")
	sel.Focus("c")
	if !sel.Focused("c") {
		t.Error("c not focused")
	}
	sel.Blur("c")
	sel.Blur("c")
	if sel.Focused("c") {
		t.Error("c still focused")
	}

	sel.Clear()
	sel.Clear()
	// Select, Deselect, Focus, Blur, Clear.
	if changes != 5 {
		t.Errorf("changes = %d, want 5", changes)
	}
}
