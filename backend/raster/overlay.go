package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/gizmo/backend"
)

type overlay struct {
	surface  *surface
	layer    backend.Layer
	color    gg.RGBA
	scaleX   float64
	scaleY   float64
	pos      mgl64.Vec3
	rot      mgl64.Quat
	released bool
}

func newOverlay(s *surface) overlay {
	return overlay{
		surface: s,
		layer:   backend.LayerDefault,
		color:   gg.White,
		scaleX:  1,
		scaleY:  1,
		rot:     mgl64.QuatIdent(),
	}
}

func (o *overlay) SetLayer(l backend.Layer) { o.layer = l }
func (o *overlay) SetColor(c gg.RGBA)       { o.color = c }
func (o *overlay) SetScale(sx, sy float64)  { o.scaleX, o.scaleY = sx, sy }
func (o *overlay) SetPosition(p mgl64.Vec3) { o.pos = p }
func (o *overlay) Release()                 { o.released = true }

// SetRotation is recorded only: overlays are painted screen aligned,
// which already faces the camera.
func (o *overlay) SetRotation(q mgl64.Quat) { o.rot = q }

type label struct {
	overlay
	text     string
	fontSize float64
}

var _ backend.Label = (*label)(nil)

func (l *label) SetText(s string)         { l.text = s }
func (l *label) SetFontSize(size float64) { l.fontSize = size }

// render draws the label centered on (x, y). The scale multiplies the
// font size; non-uniform scales use the larger factor.
func (l *label) render(dc *gg.Context, b *Backend, x, y float64) {
	size := l.fontSize * math.Max(math.Abs(l.scaleX), math.Abs(l.scaleY))
	if size <= 0 {
		return
	}
	dc.SetFont(b.face(size))
	dc.SetColor(l.color)
	dc.DrawStringAnchored(l.text, x, y, 0.5, 0.5)
}

type sprite struct {
	overlay
	img image.Image

	// cached tinted frame
	src    image.Image
	tinted *image.RGBA
	key    [3]float64
}

var _ backend.Sprite = (*sprite)(nil)

func (s *sprite) SetImage(img image.Image) { s.img = img }

// render draws the sprite centered on (x, y), scaled and tinted.
func (s *sprite) render(dc *gg.Context, x, y float64) {
	frame := s.frame()
	if frame == nil {
		return
	}
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	dc.DrawImage(gg.ImageBufFromImage(frame), x-float64(w)/2, y-float64(h)/2)
}

// frame returns the scaled and tinted image, rebuilt only when the image,
// scale or tint changes.
func (s *sprite) frame() *image.RGBA {
	key := [3]float64{s.scaleX, s.scaleY, float64(packRGBA(s.color))}
	if s.tinted != nil && s.src == s.img && s.key == key {
		return s.tinted
	}
	b := s.img.Bounds()
	w := int(math.Round(float64(b.Dx()) * math.Abs(s.scaleX)))
	h := int(math.Round(float64(b.Dy()) * math.Abs(s.scaleY)))
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.img, b, draw.Src, nil)
	if s.color != gg.White {
		tint(dst, s.color)
	}
	s.src, s.tinted, s.key = s.img, dst, key
	return dst
}

// tint multiplies every pixel of img by c.
func tint(img *image.RGBA, c gg.RGBA) {
	r, g, b, a := c.RGBA()
	mul := func(v uint8, f uint32) uint8 {
		return uint8(uint32(v) * f / 0xffff)
	}
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = mul(img.Pix[i+0], r)
		img.Pix[i+1] = mul(img.Pix[i+1], g)
		img.Pix[i+2] = mul(img.Pix[i+2], b)
		img.Pix[i+3] = mul(img.Pix[i+3], a)
	}
}

func packRGBA(c gg.RGBA) uint32 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return uint32(rgba.R)<<24 | uint32(rgba.G)<<16 | uint32(rgba.B)<<8 | uint32(rgba.A)
}
