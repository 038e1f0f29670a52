// Package drawlist provides the per-frame building blocks of a debug draw
// context: a buffer of deferred draw commands and a keyed pool of renderer
// handles.
//
// # Architecture
//
// A draw context owns one [Buffer] and one or more [Pool] values:
//
//   - Buffer: ordered list of typed [Command] records, accumulated during a
//     frame and drained exactly once by the flush step
//   - Pool: arena of renderer handles indexed by a key (a packed color, a
//     caller-supplied label id, …), created on first miss and reused for the
//     lifetime of the owning context
//
// Commands are plain value records (a [CommandType] tag plus captured
// parameters) rather than closures, so accumulating a frame's worth of
// commands does not allocate once the buffer has warmed up. Point data is
// stored in a single arena shared by all commands and referenced through a
// [Span].
//
// # Example
//
//	buf := drawlist.NewBuffer()
//	buf.Append(drawlist.Command{Type: drawlist.CmdLine, Color: gg.Red}, p0, p1)
//
//	buf.Drain(func(cmd *drawlist.Command, pts []mgl64.Vec3) {
//	    // execute against a pooled handle
//	})
//
// # Thread Safety
//
// Neither Buffer nor Pool is safe for concurrent use. Both are owned by a
// single draw context that is driven from the host's frame tick.
package drawlist
