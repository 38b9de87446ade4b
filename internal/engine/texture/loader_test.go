package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createTestHeightmap returns a 4x3 Gray16 image with a distinct value per pixel.
func createTestHeightmap() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(1000*y + 250*x + 1)})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadImage_PNG16(t *testing.T) {
	src := createTestHeightmap()
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	img, err := LoadImage(writeFile(t, "height.PNG", buf.Bytes()))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	gray := ToGray16(img)
	if gray.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v, want %v", gray.Bounds(), src.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got, want := gray.Gray16At(x, y).Y, src.Gray16At(x, y).Y; got != want {
				t.Errorf("pixel (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestLoadImage_TIFF16(t *testing.T) {
	src := createTestHeightmap()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, src, nil); err != nil {
		t.Fatalf("tiff.Encode: %v", err)
	}

	img, err := LoadImage(writeFile(t, "height.tif", buf.Bytes()))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	gray := ToGray16(img)
	if got := gray.Gray16At(3, 2).Y; got != src.Gray16At(3, 2).Y {
		t.Errorf("pixel (3,2): got %d, want %d", got, src.Gray16At(3, 2).Y)
	}
}

func TestLoadImage_BMP8(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 1, color.Gray{Y: 0x40})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}

	img, err := Decode(buf.Bytes(), "height.bmp")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := ToGray16(img).Gray16At(1, 1).Y; got != 0x4040 {
		t.Errorf("expected widened sample 0x4040, got %#x", got)
	}
}

func TestDecode_Unsupported(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "height.raw"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if Supported("height.raw") {
		t.Error("expected .raw to be unsupported")
	}
	if !Supported("HEIGHT.TGA") {
		t.Error("expected .TGA to be supported")
	}
}

func TestDecode_Corrupt(t *testing.T) {
	if _, err := Decode([]byte("garbage"), "height.png"); err == nil {
		t.Error("expected error for corrupt PNG")
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage("/nonexistent/height.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToGray16_Passthrough(t *testing.T) {
	src := createTestHeightmap()
	if ToGray16(src) != src {
		t.Error("expected Gray16 input to be returned unchanged")
	}
}
