package warptext

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gomonobold"
)

// fontCache holds parsed fonts keyed by file path so a server building a
// renderer per request does not re-read and re-parse the TTF every time.
// A cached entry is never invalidated; the path is assumed to identify the
// font for the lifetime of the process.
var fontCache = struct {
	sync.Mutex
	fonts map[string]*truetype.Font
}{fonts: map[string]*truetype.Font{}}

func loadFontFile(path string) (*truetype.Font, error) {
	fontCache.Lock()
	defer fontCache.Unlock()

	if f, ok := fontCache.fonts[path]; ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFontLoad, path, err)
	}

	f, err := parseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fontCache.fonts[path] = f
	return f, nil
}

func parseFont(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse truetype: %v", ErrFontLoad, err)
	}

	return f, nil
}

var (
	builtinOnce sync.Once
	builtin     *truetype.Font
)

// builtinFont parses the embedded Go Mono Bold font. The data ships with the
// binary, so a parse failure is a build defect, not a runtime condition.
func builtinFont() *truetype.Font {
	builtinOnce.Do(func() {
		f, err := truetype.Parse(gomonobold.TTF)
		if err != nil {
			panic(err)
		}
		builtin = f
	})

	return builtin
}
