// Package driver runs the per-frame debug drawing cycle of a scene.
//
// Every tick has two phases. BeforeUpdate visits every component of a
// registered type under the scene root and calls DrawGizmos, plus
// DrawGizmosSelected when the component's node is selected or focused.
// LateUpdate flushes every draw context attached to a node and renders
// the backend, if one is configured.
//
//	reg := driver.NewRegistry()
//	reg.Register((*Patrol)(nil))
//
//	d := driver.New(reg, driver.WithBackend(b))
//	d.OnSceneReady(sc)
//	for range frames {
//	    if err := d.Tick(); err != nil { ... }
//	}
//
// A panic in a component callback is recovered and logged; the remaining
// components still draw.
package driver
