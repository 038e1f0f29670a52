// Command gizmodemo renders a few frames of debug drawing for a small
// scene and writes the last frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/schollz/progressbar/v3"

	"github.com/gogpu/gizmo"
	"github.com/gogpu/gizmo/backend"
	_ "github.com/gogpu/gizmo/backend/raster"
	"github.com/gogpu/gizmo/driver"
	"github.com/gogpu/gizmo/scene"
	"github.com/gogpu/gizmo/shape"
)

func main() {
	var (
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 600, "image height")
		frames   = flag.Int("frames", 60, "number of frames to tick")
		output   = flag.String("output", "gizmos.png", "output file")
		config   = flag.String("config", "", "YAML gizmo config")
		name     = flag.String("backend", "raster", "rendering backend")
		selected = flag.Bool("select", true, "select the example node")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		gizmo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*width, *height, *frames, *output, *config, *name, *selected); err != nil {
		log.Fatal(err)
	}
	log.Printf("Gizmos saved to %s (%dx%d, %d frames)\n", *output, *width, *height, *frames)
}

func run(width, height, frames int, output, configPath, name string, selected bool) error {
	cfg := gizmo.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = gizmo.LoadConfig(configPath); err != nil {
			return err
		}
	}

	b, err := backend.New(name, width, height)
	if err != nil {
		return err
	}
	defer b.Release()

	g2 := gizmo.NewGizmos2D(gizmo.WithConfig(cfg), gizmo.WithSurfaces(b))
	g3 := gizmo.NewGizmos3D(gizmo.WithConfig(cfg), gizmo.WithViewport(b.Viewport()))

	sc := scene.New("demo")
	defer func() {
		if err := sc.Destroy(); err != nil {
			log.Printf("destroy scene: %v", err)
		}
	}()

	ex := scene.NewNode("example")
	ex.AddComponent(&example{node: ex, g2: g2, g3: g3})
	sc.Add(ex)

	walker := scene.NewNode("patrol")
	walker.AddComponent(&patrol{node: walker, g3: g3, route: []mgl64.Vec3{
		{-3, 0, -3}, {3, 0, -3}, {3, 0, 3}, {-3, 0, 3},
	}})
	sc.Add(walker)

	if selected {
		sc.Selection().Select(ex.ID())
	}

	reg := driver.NewRegistry()
	reg.Register((*example)(nil))
	reg.Register((*patrol)(nil))

	d := driver.New(reg, driver.WithBackend(b))
	d.OnSceneReady(sc)

	bar := progressbar.Default(int64(frames), "rendering")
	for range frames {
		if err := d.Tick(); err != nil {
			return err
		}
		if err := bar.Add(1); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
	}

	return savePNG(b, output)
}

func savePNG(b backend.Backend, path string) error {
	img := b.Image()
	if img == nil {
		return fmt.Errorf("backend %s produced no frame", b.Name())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// example draws the same shapes every frame, and a filled circle while
// selected.
type example struct {
	node *scene.Node
	g2   *gizmo.Gizmos2D
	g3   *gizmo.Gizmos3D
}

func (e *example) DrawGizmos() {
	n := e.node
	pos := n.WorldPosition()
	center := pos.Vec2()

	e.g2.DrawEllipse(n, center, 100, 50)
	e.g3.DrawCapsule(n, pos, 0.5, 2, 16, mgl64.Vec3{}, true)

	e.g2.BeginColor(n, gg.Red)
	e.g2.DrawCircle(n, center, 100)
	e.g2.DrawCircle(n, center, 200)

	e.g3.BeginColor(n, gg.Red)
	e.g3.DrawSphere(n, pos, 1, 0, 0, true)

	e.g2.BeginLayer(n, backend.LayerUI2D)
	e.g2.DrawCircle(n, center, 150)
	e.g2.EndLayer(n)

	e.g2.BeginLocalPosition(n)
	e.g2.DrawCircle(n, mgl64.Vec2{100, 100}, 40)
	e.g2.EndLocalPosition(n)

	e.g3.BeginLocalPosition(n)
	e.g3.DrawSphere(n, mgl64.Vec3{2, 1, 0}, 0.5, 12, 6, false)
	e.g3.EndLocalPosition(n)

	e.g2.DrawLine(n, mgl64.Vec2{0, 0}, mgl64.Vec2{200, 300})
	e.g3.DrawCylinder(n, mgl64.Vec3{-2, 0, 0}, 0.5, 1, 0, mgl64.Vec3{}, true)
	e.g2.DrawLabel(n, "name", n.Name(), center.Add(mgl64.Vec2{0, -230}), 0, mgl64.Vec2{})
}

func (e *example) DrawGizmosSelected() {
	e.g2.BeginColor(e.node, gg.RGBA2(0, 0.6, 1, 0.3))
	e.g2.DrawSolidCircle(e.node, e.node.WorldPosition().Vec2(), 100)
	e.g2.EndColor(e.node)
}

// patrol moves its node along a closed route and shows the route.
type patrol struct {
	node  *scene.Node
	g3    *gizmo.Gizmos3D
	route []mgl64.Vec3
	t     float64
}

func (p *patrol) DrawGizmos() {
	p.t += 0.02
	if p.t >= 1 {
		p.t -= 1
	}
	p.node.SetPosition(p.at(p.t))

	p.g3.BeginColor(p.node, gg.Green)
	p.g3.SetDepthTest(p.node, false)
	p.g3.DrawDashLineList(p.node, p.route, true)
	p.g3.DrawSpline(p.node, p.route, shape.SplineCatmullRom, 0.2)
	p.g3.EndColor(p.node)

	p.g3.BeginLocalPosition(p.node)
	p.g3.DrawBox(p.node, mgl64.Vec3{}, mgl64.Vec3{0.3, 0.3, 0.3}, mgl64.Vec3{0, p.t * 360, 0}, false)
	p.g3.DrawLabel(p.node, "pos", fmt.Sprintf("%.1f, %.1f", p.node.Position().X(), p.node.Position().Z()),
		mgl64.Vec3{0, 0.8, 0}, 0, 0)
	p.g3.EndLocalPosition(p.node)
}

// at returns the point at fraction t of the closed route.
func (p *patrol) at(t float64) mgl64.Vec3 {
	n := len(p.route)
	f := t * float64(n)
	i := int(f) % n
	return p.route[i].Add(p.route[(i+1)%n].Sub(p.route[i]).Mul(f - float64(int(f))))
}
