package colorsplit

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/colorsplit/internal/image"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	writeTestPNG(t, path, 5, 3)

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if w, h := buf.Bounds(); w != 5 || h != 3 {
		t.Errorf("Bounds() = %dx%d, want 5x3", w, h)
	}
	if r, g, b := buf.RGBAt(2, 1); r != 80 || g != 40 || b != 128 {
		t.Errorf("RGBAt(2, 1) = (%d, %d, %d), want (80, 40, 128)", r, g, b)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.png"), garbage} {
		_, err := Load(path)
		if !errors.Is(err, ErrIOFailure) {
			t.Errorf("Load(%s) error = %v, want ErrIOFailure", path, err)
		}
		var opErr *OpError
		if errors.As(err, &opErr) && opErr.Target != path {
			t.Errorf("OpError.Target = %q, want %q", opErr.Target, path)
		}
	}
}

func TestDecode(t *testing.T) {
	_, err := Decode(nil)
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("Decode(nil) error = %v, want ErrIOFailure", err)
	}
	if !errors.Is(err, image.ErrEmptyData) {
		t.Errorf("Decode(nil) error = %v, want cause image.ErrEmptyData", err)
	}

	path := filepath.Join(t.TempDir(), "in.png")
	writeTestPNG(t, path, 2, 2)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	buf, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if buf.Len() != 4 {
		t.Errorf("Len() = %d, want 4", buf.Len())
	}
}

func TestLoadRaster_Missing(t *testing.T) {
	_, err := LoadRaster(filepath.Join(t.TempDir(), "hue.bmp"))
	if !errors.Is(err, ErrIOFailure) {
		t.Errorf("LoadRaster() error = %v, want ErrIOFailure", err)
	}
}
