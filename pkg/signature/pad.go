// Package signature records handwritten signatures as strokes and exports
// them as PNG rasters.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

// ErrEmpty is returned when exporting a pad with no strokes.
var ErrEmpty = errors.New("signature is empty")

// Point is one sampled pen position in surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen-down movement.
type Stroke struct {
	Points []Point `json:"points"`
}

// Pad is a drawing surface. Like a canvas, changing its size wipes what
// was drawn; callers that want to keep strokes across a resize must read
// them with ToData first and replay them with FromData.
type Pad struct {
	width, height int
	penWidth      float64
	background    color.Color
	pen           color.Color

	strokes []Stroke
	active  *Stroke
}

// NewPad creates a white surface with a black pen.
func NewPad(width, height int) *Pad {
	return &Pad{
		width:      width,
		height:     height,
		penWidth:   2.5,
		background: color.White,
		pen:        color.Black,
	}
}

// Size returns the surface dimensions in pixels.
func (p *Pad) Size() (int, int) {
	return p.width, p.height
}

// SetSize resizes the surface and clears it.
func (p *Pad) SetSize(width, height int) {
	p.width, p.height = width, height
	p.Clear()
}

// BeginStroke puts the pen down at (x, y).
func (p *Pad) BeginStroke(x, y float64) {
	p.EndStroke()
	p.active = &Stroke{Points: []Point{{X: x, Y: y}}}
}

// LineTo extends the current stroke. It is ignored while the pen is up.
func (p *Pad) LineTo(x, y float64) {
	if p.active == nil {
		return
	}
	p.active.Points = append(p.active.Points, Point{X: x, Y: y})
}

// EndStroke lifts the pen and commits the current stroke.
func (p *Pad) EndStroke() {
	if p.active == nil {
		return
	}
	p.strokes = append(p.strokes, *p.active)
	p.active = nil
}

// IsEmpty reports whether nothing has been drawn.
func (p *Pad) IsEmpty() bool {
	return len(p.strokes) == 0 && p.active == nil
}

// Clear removes every stroke.
func (p *Pad) Clear() {
	p.strokes = nil
	p.active = nil
}

// ToData returns a copy of the committed strokes.
func (p *Pad) ToData() []Stroke {
	p.EndStroke()
	out := make([]Stroke, len(p.strokes))
	for i, s := range p.strokes {
		out[i] = Stroke{Points: append([]Point(nil), s.Points...)}
	}
	return out
}

// FromData replaces the surface content with strokes.
func (p *Pad) FromData(strokes []Stroke) {
	p.Clear()
	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		p.strokes = append(p.strokes, Stroke{Points: append([]Point(nil), s.Points...)})
	}
}

// Image rasterizes the strokes onto an opaque surface-sized image.
func (p *Pad) Image() *image.RGBA {
	p.EndStroke()
	w, h := p.width, p.height
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(p.background), image.Point{}, draw.Src)
	if w <= 0 || h <= 0 || len(p.strokes) == 0 {
		return dst
	}

	z := vector.NewRasterizer(w, h)
	half := p.penWidth / 2
	for _, s := range p.strokes {
		for i, pt := range s.Points {
			addDot(z, pt, half)
			if i > 0 {
				addSegment(z, s.Points[i-1], pt, half)
			}
		}
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(p.pen), image.Point{})
	return dst
}

// ExportPNG encodes the signature as PNG.
func (p *Pad) ExportPNG() ([]byte, error) {
	if p.IsEmpty() {
		return nil, ErrEmpty
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Image()); err != nil {
		return nil, fmt.Errorf("error encoding signature: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the PNG as a data:image/png;base64 URI.
func (p *Pad) DataURL() (string, error) {
	raw, err := p.ExportPNG()
	if err != nil {
		return "", err
	}
	return EncodeDataURL(raw), nil
}

// EncodeDataURL wraps PNG bytes in a data URI.
func EncodeDataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// Every shape is wound the same way so overlapping coverage adds up instead
// of cancelling out.

func addSegment(z *vector.Rasterizer, a, b Point, half float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*half, dx/length*half
	z.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	z.LineTo(float32(b.X+nx), float32(b.Y+ny))
	z.LineTo(float32(b.X-nx), float32(b.Y-ny))
	z.LineTo(float32(a.X-nx), float32(a.Y-ny))
	z.ClosePath()
}

func addDot(z *vector.Rasterizer, c Point, half float64) {
	z.MoveTo(float32(c.X-half), float32(c.Y-half))
	z.LineTo(float32(c.X-half), float32(c.Y+half))
	z.LineTo(float32(c.X+half), float32(c.Y+half))
	z.LineTo(float32(c.X+half), float32(c.Y-half))
	z.ClosePath()
}
