package drawlist

import "github.com/go-gl/mathgl/mgl64"

// Buffer accumulates the draw commands of one frame in insertion order.
//
// Points of all commands share one arena, so recording a command copies its
// points once and never allocates per command after warmup. A Buffer is
// drained exactly once per frame with [Buffer.Drain]; it is never partially
// flushed.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	commands []Command
	points   []mgl64.Vec3
}

// NewBuffer creates an empty buffer with pre-allocated capacity.
func NewBuffer() *Buffer {
	return &Buffer{
		commands: make([]Command, 0, 64),
		points:   make([]mgl64.Vec3, 0, 256),
	}
}

// Append records cmd together with its points. The points are copied into
// the arena and cmd.Points is overwritten to address them.
func (b *Buffer) Append(cmd Command, points ...mgl64.Vec3) {
	cmd.Points = b.store(points)
	b.commands = append(b.commands, cmd)
}

func (b *Buffer) store(points []mgl64.Vec3) Span {
	// #nosec G115 -- arena size is bounded by a single frame's draw calls
	span := Span{Offset: uint32(len(b.points)), Len: uint32(len(points))}
	b.points = append(b.points, points...)
	return span
}

// Len returns the number of recorded commands.
func (b *Buffer) Len() int {
	return len(b.commands)
}

// PointCount returns the number of points held in the arena.
func (b *Buffer) PointCount() int {
	return len(b.points)
}

// Commands returns the recorded commands. The slice is only valid until the
// next call to Reset or Drain.
func (b *Buffer) Commands() []Command {
	return b.commands
}

// Points returns the arena slice addressed by s.
// Returns nil if s is out of range.
func (b *Buffer) Points(s Span) []mgl64.Vec3 {
	end := int(s.Offset) + int(s.Len)
	if end > len(b.points) {
		return nil
	}
	return b.points[s.Offset:end:end]
}

// Replay calls fn for every recorded command in insertion order.
// The buffer is left untouched.
func (b *Buffer) Replay(fn func(cmd *Command, points []mgl64.Vec3)) {
	for i := range b.commands {
		cmd := &b.commands[i]
		fn(cmd, b.Points(cmd.Points))
	}
}

// Drain replays every command and then empties the buffer.
func (b *Buffer) Drain(fn func(cmd *Command, points []mgl64.Vec3)) {
	b.Replay(fn)
	b.Reset()
}

// Reset empties the buffer without releasing its capacity.
func (b *Buffer) Reset() {
	// Drop references held by overlay commands so images can be collected.
	for i := range b.commands {
		b.commands[i].Image = nil
		b.commands[i].Text = ""
	}
	b.commands = b.commands[:0]
	b.points = b.points[:0]
}
