package warptext

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	background = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	foreground = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

// rasterize draws text centered on a fresh canvas at oversample times the
// target size, then lays the obstruction lines over it. The caller owns the
// returned canvas; nothing here is shared between render calls.
func (r *Renderer) rasterize(text string) *image.RGBA {
	w := r.width * r.oversample
	h := r.height * r.oversample

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    math.Round(float64(h) * r.fontSizeRatio),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(foreground),
		Face: face,
	}

	// Center on the advance width and the face's ascent+descent box.
	// Text larger than the canvas draws flush at the edge instead.
	m := face.Metrics()
	tw := d.MeasureString(text).Ceil()
	th := (m.Ascent + m.Descent).Ceil()

	x := (w - tw) / 2
	if x < 0 {
		x = 0
	}
	y := (h - th) / 2
	if y < 0 {
		y = 0
	}

	d.Dot = fixed.P(x, y+m.Ascent.Ceil())
	d.DrawString(text)

	r.drawLines(canvas)

	return canvas
}

// drawLines paints r.lines dark lines spanning the canvas. They are drawn
// before the warp so they bend along with the glyphs.
func (r *Renderer) drawLines(m *image.RGBA) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	thickness := int(math.Round(math.Sqrt(float64(w*h)) * 0.02))
	if thickness < 1 {
		thickness = 1
	}

	for i := 0; i < r.lines; i++ {
		x1 := r.rng.Intn(w/10 + 1)
		y1 := r.rng.Intn(h)
		x2 := w - 1 - r.rng.Intn(w/10+1)
		y2 := r.rng.Intn(h)

		drawLine(m, x1, y1, x2, y2, thickness)
	}
}

func drawLine(m *image.RGBA, x, y, ex, ey, thickness int) {
	if x > ex {
		x, ex = ex, x
		y, ey = ey, y
	}

	dx := ex - x
	if dx == 0 {
		dx = 1
	}

	step := float64(ey-y) / float64(dx)
	for i := 0; i <= ex-x; i++ {
		yy := int(math.Floor(float64(y) + float64(i)*step))

		for t := 0; t < thickness; t++ {
			if (image.Point{X: x + i, Y: yy + t}).In(m.Bounds()) {
				m.SetRGBA(x+i, yy+t, foreground)
			}
		}
	}
}
