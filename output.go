package warptext

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const jpegQuality = 90

// render runs the full pipeline once: resolve text, rasterize, warp, scale,
// noise. Every public output method goes through here.
func (r *Renderer) render() (string, *image.RGBA, error) {
	text, err := r.resolveText()
	if err != nil {
		return "", nil, err
	}

	canvas := r.rasterize(text)
	warp(canvas)
	out := r.scale(canvas)
	r.addNoise(out)

	return text, out, nil
}

// Image generates a fresh challenge and returns its text together with the
// rendered image.
func (r *Renderer) Image() (string, image.Image, error) {
	text, m, err := r.render()
	if err != nil {
		return "", nil, err
	}

	return text, m, nil
}

// Bytes generates a fresh challenge and returns its text together with the
// image encoded in the configured format (PNG unless changed by WithFormat).
func (r *Renderer) Bytes() (string, []byte, error) {
	text, m, err := r.render()
	if err != nil {
		return "", nil, err
	}

	buf := &bytes.Buffer{}
	if err := encode(buf, m, r.format); err != nil {
		return "", nil, err
	}

	return text, buf.Bytes(), nil
}

// WriteFile generates a fresh challenge and writes it to path, picking the
// codec from the path's extension (.png, .jpg/.jpeg or .gif). It returns the
// challenge text.
func (r *Renderer) WriteFile(path string) (string, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return "", err
	}

	text, m, err := r.render()
	if err != nil {
		return "", err
	}

	fp, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write challenge: %w", err)
	}

	if err := encode(fp, m, format); err != nil {
		fp.Close()
		return "", err
	}

	if err := fp.Close(); err != nil {
		return "", fmt.Errorf("write challenge: %w", err)
	}

	return text, nil
}

func encode(w io.Writer, m image.Image, format Format) error {
	var err error

	switch format {
	case FormatPNG:
		err = png.Encode(w, m)
	case FormatJPEG:
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	case FormatGIF:
		err = gif.Encode(w, m, nil)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrEncode, format)
	}

	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}

	return nil
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".gif":
		return FormatGIF, nil
	default:
		return "", fmt.Errorf("%w: cannot infer format from %q", ErrEncode, path)
	}
}
