package render

import (
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes f as an image. kind is "png", "bmp" or "tiff", or a file
// name whose extension names one of them.
func Encode(w io.Writer, f *Frame, kind string) error {
	if ext := filepath.Ext(kind); ext != "" {
		kind = ext[1:]
	}
	img := f.Image()
	switch strings.ToLower(kind) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tif", "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
	return fmt.Errorf("unsupported image format %q", kind)
}
