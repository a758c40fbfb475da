package signature

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// Fit scales src into a w×h canvas preserving its aspect ratio. The unused
// area is white.
func Fit(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || w <= 0 || h <= 0 {
		return dst
	}

	scale := min(float64(w)/float64(sb.Dx()), float64(h)/float64(sb.Dy()))
	tw := max(1, int(float64(sb.Dx())*scale))
	th := max(1, int(float64(sb.Dy())*scale))
	x0 := (w - tw) / 2
	y0 := (h - th) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), src, sb, draw.Over, nil)
	return dst
}

// FitPNG decodes a PNG, fits it into a w×h box and re-encodes it.
func FitPNG(pngData []byte, w, h int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("error decoding signature: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Fit(src, w, h)); err != nil {
		return nil, fmt.Errorf("error encoding signature: %w", err)
	}
	return buf.Bytes(), nil
}
