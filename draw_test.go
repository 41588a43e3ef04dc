package warptext

import (
	"image"
	"math/rand"
	"testing"
)

// inkBounds returns the bounding box of all non-background pixels.
func inkBounds(m *image.RGBA) (image.Rectangle, bool) {
	var box image.Rectangle
	found := false

	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.RGBAAt(x, y) == background {
				continue
			}

			px := image.Rect(x, y, x+1, y+1)
			if !found {
				box = px
				found = true
			} else {
				box = box.Union(px)
			}
		}
	}

	return box, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestRasterizeCentersText(t *testing.T) {
	const w, h = 200, 80

	r, err := New(WithText("Text"), WithSize(w, h), WithLines(0), WithOversample(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	canvas := r.rasterize("Text")

	box, ok := inkBounds(canvas)
	if !ok {
		t.Fatal("rasterize() produced a blank canvas")
	}

	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2

	if abs(cx-w/2) > w/10 {
		t.Errorf("ink center x = %d, want %d±%d", cx, w/2, w/10)
	}
	if abs(cy-h/2) > h/8 {
		t.Errorf("ink center y = %d, want %d±%d", cy, h/2, h/8)
	}
}

func TestRasterizeClampsOversizedText(t *testing.T) {
	// Text much wider than the canvas must draw flush at the left edge
	// rather than at a negative origin, and must not panic.
	r, err := New(WithText("WWWWWWWWWWWWWWWW"), WithSize(30, 10),
		WithFontSizeRatio(1), WithLines(0), WithOversample(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	canvas := r.rasterize("WWWWWWWWWWWWWWWW")

	box, ok := inkBounds(canvas)
	if !ok {
		t.Fatal("rasterize() produced a blank canvas")
	}
	if box.Min.X < 0 {
		t.Errorf("ink starts at x = %d, want >= 0", box.Min.X)
	}
	if box.Min.X > 5 {
		t.Errorf("ink starts at x = %d, want flush left", box.Min.X)
	}
}

func TestDrawLinesAddInk(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	plain, err := New(WithText("A"), WithSize(100, 50), WithLines(0), WithOversample(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	lined, err := New(WithText("A"), WithSize(100, 50), WithLines(3),
		WithOversample(1), WithRand(rng))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	count := func(m *image.RGBA) int {
		n := 0
		b := m.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if m.RGBAAt(x, y) != background {
					n++
				}
			}
		}
		return n
	}

	if p, l := count(plain.rasterize("A")), count(lined.rasterize("A")); l <= p {
		t.Errorf("ink with lines = %d, without = %d, want more with lines", l, p)
	}
}
