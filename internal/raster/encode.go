package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

// Format is an output image encoding.
type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// FormatFromPath picks the format from a file extension, defaulting to webp.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".webp", "":
		return FormatWebP, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported preview format %q", ext)
	}
}

// ContentType returns the http media type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/webp"
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: 85})
	default:
		return fmt.Errorf("unsupported preview format %q", f)
	}
}
