// Package warptext renders a challenge string into a distorted raster image
// suitable for use as a CAPTCHA.
//
// A Renderer resolves its text source, rasterizes the text centered on a
// blank canvas, pushes every pixel row through a sine-wave warp, scales the
// result down to the configured size and finally sprinkles salt noise over
// it. The warp is deterministic for a given canvas size; the text source and
// the noise are the only places randomness enters.
//
// Every output call (Image, Bytes, WriteFile) runs the whole pipeline again.
// There is no caching: two calls on a renderer with a random text source
// return two different challenges. Capture the text and image from a single
// call if you need one challenge in several representations.
package warptext

import (
	"fmt"
	"math/rand"

	"github.com/golang/freetype/truetype"
)

// DefaultAlphabet is used by the default text source. It leaves out
// characters that become ambiguous once warped (0/O, 1/I, ...).
const DefaultAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Rand is the subset of math/rand.Rand a Renderer draws from.
// The default implementation delegates to the locked top-level math/rand
// functions and is safe for concurrent use; a *rand.Rand passed through
// WithRand is not.
type Rand interface {
	Intn(n int) int
}

// stdRand is the process-wide random source.
type stdRand struct{}

func (stdRand) Intn(n int) int { return rand.Intn(n) }

// Resample selects the filter used when the oversampled canvas is scaled
// down to the target size.
type Resample int

const (
	ResampleNearest Resample = iota
	ResampleBilinear
	ResampleBicubic
	ResampleLanczos
)

// Format names an output image codec.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
)

// Renderer generates challenge images. Its configuration is fixed at New;
// rendering never mutates it, so a Renderer may be shared across goroutines
// as long as its random source is safe for that (the default one is).
type Renderer struct {
	fixed     string        // fixed challenge text; used when textFn is nil
	textFn    func() string // challenge text callback; re-invoked every render
	hasSource bool

	font          *truetype.Font
	fontPath      string
	fontData      []byte
	width, height int
	fontSizeRatio float64
	resample      Resample
	noise         float64
	lines         int
	oversample    int
	format        Format
	rng           Rand
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithText uses a fixed challenge string for every render.
func WithText(s string) Option {
	return func(r *Renderer) {
		r.fixed = s
		r.textFn = nil
		r.hasSource = true
	}
}

// WithTextFunc uses fn as the challenge text source. It is invoked once per
// render and may return a different string every time. Returning an empty
// string is treated as a configuration error.
func WithTextFunc(fn func() string) Option {
	return func(r *Renderer) {
		r.fixed = ""
		r.textFn = fn
		r.hasSource = true
	}
}

// WithFont loads a TTF font from path. Without this option (or
// WithFontBytes) a built-in monospace font is used.
func WithFont(path string) Option {
	return func(r *Renderer) { r.fontPath = path }
}

// WithFontBytes parses a TTF font from data.
func WithFontBytes(data []byte) Option {
	return func(r *Renderer) { r.fontData = data }
}

// WithSize sets the output image size in pixels. Default is 100x50.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// WithFontSizeRatio sets the fraction of the canvas height used as the font
// point size, in (0, 1]. Default is 0.8.
func WithFontSizeRatio(ratio float64) Option {
	return func(r *Renderer) { r.fontSizeRatio = ratio }
}

// WithResample sets the filter used for the final downscale.
// Default is ResampleBilinear.
func WithResample(f Resample) Option {
	return func(r *Renderer) { r.resample = f }
}

// WithNoise sets the fraction of output pixels overwritten with random
// colors, in [0, 1]. Default is 0; values outside the range are rejected by
// New rather than clamped.
func WithNoise(level float64) Option {
	return func(r *Renderer) { r.noise = level }
}

// WithLines sets how many obstruction lines are drawn across the text before
// the warp. Default is 1; 0 disables them.
func WithLines(n int) Option {
	return func(r *Renderer) { r.lines = n }
}

// WithOversample sets the integer factor the glyph canvas is rasterized at
// before being scaled down to the target size. Default is 2; 1 skips the
// scaling step entirely, which also means the resample filter is never used.
func WithOversample(factor int) Option {
	return func(r *Renderer) { r.oversample = factor }
}

// WithFormat sets the codec used by Bytes. Default is FormatPNG.
func WithFormat(f Format) Option {
	return func(r *Renderer) { r.format = f }
}

// WithRand replaces the random source used for text and noise generation.
// Handy for reproducible output in tests; note that a *rand.Rand is not safe
// for concurrent use.
func WithRand(rng Rand) Option {
	return func(r *Renderer) { r.rng = rng }
}

// New builds a Renderer. Configuration problems and font loading failures
// are reported here, not at render time.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		width:         100,
		height:        50,
		fontSizeRatio: 0.8,
		resample:      ResampleBilinear,
		lines:         1,
		oversample:    2,
		format:        FormatPNG,
		rng:           stdRand{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if !r.hasSource {
		rng := r.rng
		r.textFn = func() string { return randomText(rng, 6, DefaultAlphabet) }
	}

	var err error
	switch {
	case r.fontPath != "":
		r.font, err = loadFontFile(r.fontPath)
	case r.fontData != nil:
		r.font, err = parseFont(r.fontData)
	default:
		r.font = builtinFont()
	}
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) validate() error {
	if r.width <= 0 || r.height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrConfig, r.width, r.height)
	}
	if r.fontSizeRatio <= 0 || r.fontSizeRatio > 1 {
		return fmt.Errorf("%w: font size ratio must be in (0,1], got %v", ErrConfig, r.fontSizeRatio)
	}
	if r.noise < 0 || r.noise > 1 {
		return fmt.Errorf("%w: noise level must be in [0,1], got %v", ErrConfig, r.noise)
	}
	if r.lines < 0 {
		return fmt.Errorf("%w: line count must not be negative, got %d", ErrConfig, r.lines)
	}
	if r.oversample < 1 || r.oversample > 8 {
		return fmt.Errorf("%w: oversample factor must be in [1,8], got %d", ErrConfig, r.oversample)
	}
	if r.hasSource && r.textFn == nil && r.fixed == "" {
		return fmt.Errorf("%w: fixed challenge text is empty", ErrConfig)
	}
	switch r.resample {
	case ResampleNearest, ResampleBilinear, ResampleBicubic, ResampleLanczos:
	default:
		return fmt.Errorf("%w: unknown resample filter %d", ErrConfig, r.resample)
	}
	switch r.format {
	case FormatPNG, FormatJPEG, FormatGIF:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrConfig, r.format)
	}
	return nil
}

// resolveText produces the challenge string for one render call.
// It is called exactly once per render so a random source is never
// re-invoked mid-pipeline.
func (r *Renderer) resolveText() (string, error) {
	if r.textFn == nil {
		return r.fixed, nil
	}

	text := r.textFn()
	if text == "" {
		return "", fmt.Errorf("%w: text source returned an empty string", ErrConfig)
	}

	return text, nil
}

// RandomText returns a text source producing n random characters from
// alphabet, drawn from the process-wide random source.
func RandomText(n int, alphabet string) func() string {
	return func() string { return randomText(stdRand{}, n, alphabet) }
}

func randomText(rng Rand, n int, alphabet string) string {
	runes := []rune(alphabet)
	out := make([]rune, n)

	for i := range out {
		out[i] = runes[rng.Intn(len(runes))]
	}

	return string(out)
}
