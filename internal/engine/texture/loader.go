// Package texture loads images from disk for heightmaps and GPU textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps lowercase file extensions to their codec.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".bmp":  bmp.Decode,
	".tga":  tga.Decode,
}

// Supported reports whether path has an extension LoadImage can decode.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LoadImage reads and decodes an image file. The codec is chosen by extension.
func LoadImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode decodes image bytes; name is only used to pick the codec.
func Decode(data []byte, name string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(name))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unsupported image format %q", ext)
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	return img, nil
}

// ToGray16 converts img to 16-bit grayscale. Gray16 input is returned as is.
// 8-bit gray and color inputs are widened (0xAB -> 0xABAB).
func ToGray16(img image.Image) *image.Gray16 {
	if g, ok := img.(*image.Gray16); ok {
		return g
	}

	b := img.Bounds()
	dst := image.NewGray16(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray16(x, y, color.Gray16Model.Convert(img.At(x, y)).(color.Gray16))
		}
	}
	return dst
}
