package backend

import (
	"errors"
	"image"
	"testing"
)

// mockBackend is a minimal backend implementation for testing.
type mockBackend struct {
	name          string
	width, height int
	released      bool
}

func (b *mockBackend) Name() string                        { return b.name }
func (b *mockBackend) NewSurface(_ Owner) (Surface, error) { return nil, nil }
func (b *mockBackend) Viewport() Viewport                  { return nil }
func (b *mockBackend) Render() error                       { return nil }
func (b *mockBackend) Image() image.Image                  { return nil }
func (b *mockBackend) Release()                            { b.released = true }

func mockFactory(name string) Factory {
	return func(w, h int) (Backend, error) {
		return &mockBackend{name: name, width: w, height: h}, nil
	}
}

// resetRegistry clears all registered backends for test isolation.
func resetRegistry() {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories = make(map[string]Factory)
}

func TestRegisterAndNew(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", mockFactory("test"))

	b, err := New("test", 64, 32)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	mock, ok := b.(*mockBackend)
	if !ok {
		t.Fatal("backend is not a mockBackend")
	}
	if mock.name != "test" {
		t.Errorf("got name %q, want %q", mock.name, "test")
	}
	if mock.width != 64 || mock.height != 32 {
		t.Errorf("got size %dx%d, want 64x32", mock.width, mock.height)
	}
}

func TestNewUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := New("unknown", 10, 10)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("New() error = %v, want ErrUnknownBackend", err)
	}
}

func TestNewInvalidSize(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("test", mockFactory("test"))

	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("test", tt.w, tt.h); err == nil {
				t.Errorf("New(%d, %d) expected error", tt.w, tt.h)
			}
		})
	}
}

func TestNewFactoryError(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	boom := errors.New("boom")
	Register("broken", func(int, int) (Backend, error) { return nil, boom })

	_, err := New("broken", 10, 10)
	if !errors.Is(err, boom) {
		t.Errorf("New() error = %v, want wrapped %v", err, boom)
	}
}

func TestRegisterNilFactory(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil factory")
		}
	}()

	Register("nil", nil)
}

func TestRegisterDuplicate(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("dup", mockFactory("dup"))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate registration")
		}
	}()

	Register("dup", mockFactory("dup"))
}

func TestUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register("temp", mockFactory("temp"))
	if !IsRegistered("temp") {
		t.Error("backend should be registered")
	}

	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("backend should not be registered after Unregister")
	}

	// Unregister non-existent should not panic
	Unregister("nonexistent")
}

func TestBackends(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	// Register in non-alphabetical order
	Register("charlie", mockFactory("c"))
	Register("alpha", mockFactory("a"))
	Register("bravo", mockFactory("b"))

	names := Backends()
	want := []string{"alpha", "bravo", "charlie"}
	if len(names) != len(want) {
		t.Fatalf("got %d backends, want %d", len(names), len(want))
	}
	for i, name := range names {
		if name != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown backend")
		}
	}()

	MustNew("missing", 1, 1)
}
