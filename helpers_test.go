package gizmo

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// testTarget is a minimal Target positioned by a world matrix.
type testTarget struct {
	id       string
	world    mgl64.Mat4
	attached []any
}

func newTestTarget(id string, pos mgl64.Vec3) *testTarget {
	return &testTarget{id: id, world: mgl64.Translate3D(pos.X(), pos.Y(), pos.Z())}
}

func (t *testTarget) ID() string              { return t.id }
func (t *testTarget) WorldMatrix() mgl64.Mat4 { return t.world }
func (t *testTarget) Attachments() []any      { return t.attached }
func (t *testTarget) Attach(a any)            { t.attached = append(t.attached, a) }
func (t *testTarget) moveTo(pos mgl64.Vec3)   { t.world = mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()) }

// captureLogger returns a logger writing text records at debug level to
// the returned buffer.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, &buf
}

// warnings counts the warn records in a captureLogger buffer.
func warnings(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "level=WARN")
}
