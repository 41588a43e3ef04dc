package warptext

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestBytesDecodesToConfiguredSize(t *testing.T) {
	r, err := New(WithText("Text"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	text, data, err := r.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if text != "Text" {
		t.Errorf("Bytes() text = %q, want Text", text)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("decoded size = %v, want 100x50", b)
	}
}

func TestBytesFormats(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatPNG, "png"},
		{FormatJPEG, "jpeg"},
		{FormatGIF, "gif"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, err := New(WithText("Text"), WithFormat(tt.format))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			_, data, err := r.Bytes()
			if err != nil {
				t.Fatalf("Bytes() error = %v", err)
			}

			_, name, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("image.Decode() error = %v", err)
			}
			if name != tt.want {
				t.Errorf("decoded format = %q, want %q", name, tt.want)
			}
		})
	}
}

func TestWriteFileInfersFormat(t *testing.T) {
	dir := t.TempDir()

	r, err := New(WithText("File"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, name := range []string{"a.png", "b.jpg", "c.jpeg", "d.gif"} {
		path := filepath.Join(dir, name)

		text, err := r.WriteFile(path)
		if err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		if text != "File" {
			t.Errorf("WriteFile(%s) text = %q, want File", name, text)
		}

		fp, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}

		img, _, err := image.Decode(fp)
		fp.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("%s decoded size = %v, want 100x50", name, b)
		}
	}
}

func TestWriteFileUnknownExtension(t *testing.T) {
	r, err := New(WithText("File"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.WriteFile(filepath.Join(t.TempDir(), "a.bmp")); !errors.Is(err, ErrEncode) {
		t.Errorf("WriteFile(a.bmp) error = %v, want ErrEncode", err)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	r, err := New(WithText("File"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "dir", "a.png")
	if _, err := r.WriteFile(path); err == nil {
		t.Error("WriteFile() to a nonexistent directory did not fail")
	}
}

func TestWriteFileRandomSourceTwoFiles(t *testing.T) {
	dir := t.TempDir()

	r, err := New(WithTextFunc(RandomText(6, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, name := range []string{"one.png", "two.png"} {
		path := filepath.Join(dir, name)

		text, err := r.WriteFile(path)
		if err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
		if len(text) != 6 {
			t.Errorf("%s: text %q has length %d, want 6", name, text, len(text))
		}

		fp, err := os.Open(path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}

		img, _, err := image.Decode(fp)
		fp.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
			t.Errorf("%s decoded size = %v, want 100x50", name, b)
		}
	}
}
