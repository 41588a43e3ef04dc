package warptext

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Warp wave shape relative to the canvas: the amplitude is a fraction of the
// width and one full period spans the height, so the distortion reads the
// same at any size. Both are functions of the canvas dimensions only, which
// keeps the warp fully deterministic.
const (
	warpAmplitudeDiv = 18.0
	warpPhase        = math.Pi / 2
)

// warp shifts every pixel row horizontally by a sine of its row index.
// Pixels shifted off the canvas are lost; vacated pixels take the background
// color. Mutates m in place.
func warp(m *image.RGBA) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	amp := float64(w) / warpAmplitudeDiv
	period := float64(h)

	row := make([]uint8, w*4)
	for y := 0; y < h; y++ {
		dx := int(math.Round(amp * math.Sin(2*math.Pi*float64(y)/period+warpPhase)))
		if dx == 0 {
			continue
		}

		off := m.PixOffset(b.Min.X, b.Min.Y+y)
		px := m.Pix[off : off+w*4]
		copy(row, px)

		// Background is opaque white, so the whole row can be
		// memset-style filled before the shifted copy.
		for i := range px {
			px[i] = 0xFF
		}

		switch {
		case dx >= w || dx <= -w:
			// Row shifted entirely off-canvas.
		case dx > 0:
			copy(px[dx*4:], row[:(w-dx)*4])
		default:
			copy(px[:(w+dx)*4], row[-dx*4:])
		}
	}
}

// addNoise overwrites count = round(level * area) randomly chosen pixels
// with random opaque colors. A level of zero (the default) returns without
// touching the canvas.
func (r *Renderer) addNoise(m *image.RGBA) {
	if r.noise <= 0 {
		return
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	count := int(math.Round(r.noise * float64(w*h)))

	for i := 0; i < count; i++ {
		x := b.Min.X + r.rng.Intn(w)
		y := b.Min.Y + r.rng.Intn(h)

		m.SetRGBA(x, y, color.RGBA{
			R: uint8(r.rng.Intn(256)),
			G: uint8(r.rng.Intn(256)),
			B: uint8(r.rng.Intn(256)),
			A: 0xFF,
		})
	}
}

// scale resizes the oversampled canvas down to the target size using the
// configured resample filter. With an oversample factor of 1 the canvas is
// already at the target size and is returned untouched.
func (r *Renderer) scale(src *image.RGBA) *image.RGBA {
	if r.oversample == 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.resample.scaler().Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	return dst
}

func (f Resample) scaler() draw.Scaler {
	switch f {
	case ResampleNearest:
		return draw.NearestNeighbor
	case ResampleBicubic:
		return draw.CatmullRom
	case ResampleLanczos:
		return lanczos
	default:
		return draw.BiLinear
	}
}

// lanczos is a Lanczos-3 kernel; x/image/draw ships nearest, bilinear and
// Catmull-Rom but no Lanczos, so the window function is supplied here and
// the kernel scaler does the rest.
var lanczos = &draw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		t = math.Abs(t)
		if t >= 3 {
			return 0
		}
		if t == 0 {
			return 1
		}

		pt := math.Pi * t
		return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
	},
}
