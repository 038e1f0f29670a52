package scene

import "slices"

// Selection is the set of node ids selected in the host UI, plus the ids
// of nodes that currently have focus.
//
// Selection is not safe for concurrent use.
type Selection struct {
	selected []string
	focused  map[string]bool
	onChange []func()
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{focused: make(map[string]bool)}
}

// Select adds ids to the selection, keeping selection order.
func (s *Selection) Select(ids ...string) {
	changed := false
	for _, id := range ids {
		if !slices.Contains(s.selected, id) {
			s.selected = append(s.selected, id)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Deselect removes ids from the selection.
func (s *Selection) Deselect(ids ...string) {
	n := len(s.selected)
	s.selected = slices.DeleteFunc(s.selected, func(id string) bool {
		return slices.Contains(ids, id)
	})
	if len(s.selected) != n {
		s.notify()
	}
}

// Clear empties the selection and drops every focus.
func (s *Selection) Clear() {
	if len(s.selected) == 0 && len(s.focused) == 0 {
		return
	}
	s.selected = s.selected[:0]
	clear(s.focused)
	s.notify()
}

// Selected returns the selected ids in selection order. The slice must
// not be modified.
func (s *Selection) Selected() []string { return s.selected }

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

// Focus marks id as focused in the editor.
func (s *Selection) Focus(id string) {
	if !s.focused[id] {
		s.focused[id] = true
		s.notify()
	}
}

// Blur removes the focus from id.
func (s *Selection) Blur(id string) {
	if s.focused[id] {
		delete(s.focused, id)
		s.notify()
	}
}

// Focused reports whether id has focus.
func (s *Selection) Focused(id string) bool { return s.focused[id] }

// OnChange registers fn to be called after every change.
func (s *Selection) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

func (s *Selection) notify() {
	for _, fn := range s.onChange {
		fn()
	}
}
