package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// testPattern builds an NRGBA image with varied, partly transparent pixels.
func testPattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x * 17) ^ (y * 31)),
				G: uint8((x * 43) + (y * 13)),
				B: uint8((x * 7) ^ (y * 11)),
				A: uint8(128 + x%128),
			})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

// =============================================================================
// Decode Tests
// =============================================================================

func TestFromStdImage_NRGBADropsAlpha(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	nrgba.SetNRGBA(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 10})

	buf := FromStdImage(nrgba)

	if buf.Width() != 4 || buf.Height() != 4 {
		t.Errorf("Dimensions = (%d, %d), want (4, 4)", buf.Width(), buf.Height())
	}
	r, g, b := buf.RGBAt(3, 3)
	if r != 128 || g != 64 || b != 32 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 64, 32)", r, g, b)
	}
}

func TestFromStdImage_RGBAUnpremultiplies(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 100, G: 50, B: 0, A: 255})

	r, g, b := FromStdImage(rgba).RGB(0)
	if r != 100 || g != 50 || b != 0 {
		t.Errorf("Pixel = (%d, %d, %d), want (100, 50, 0)", r, g, b)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 5, 5))
	gray.SetGray(2, 4, color.Gray{Y: 99})

	r, g, b := FromStdImage(gray).RGBAt(2, 4)
	if r != 99 || g != 99 || b != 99 {
		t.Errorf("Pixel = (%d, %d, %d), want (99, 99, 99)", r, g, b)
	}
}

func TestFromStdImage_SubImageOrigin(t *testing.T) {
	src := testPattern(8, 8)
	sub := src.SubImage(image.Rect(2, 3, 6, 7))

	buf := FromStdImage(sub)
	if buf.Width() != 4 || buf.Height() != 4 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 4)", buf.Width(), buf.Height())
	}
	want := src.NRGBAAt(2, 3)
	r, g, b := buf.RGBAt(0, 0)
	if r != want.R || g != want.G || b != want.B {
		t.Errorf("Pixel(0,0) = (%d, %d, %d), want (%d, %d, %d)", r, g, b, want.R, want.G, want.B)
	}
}

func TestLoadImage_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.png")
	writePNG(t, path, testPattern(31, 17))

	first, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	second, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() second error = %v", err)
	}

	if !first.Equal(second) {
		t.Error("loading the same file twice produced different buffers")
	}
	if first.Width() != 31 || first.Height() != 17 {
		t.Errorf("Dimensions = (%d, %d), want (31, 17)", first.Width(), first.Height())
	}
}

func TestLoadImage_JPEG(t *testing.T) {
	var data bytes.Buffer
	if err := jpeg.Encode(&data, testPattern(16, 16), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	buf, err := LoadImageFromBytes(data.Bytes())
	if err != nil {
		t.Fatalf("LoadImageFromBytes() error = %v", err)
	}
	if buf.Width() != 16 || buf.Height() != 16 {
		t.Errorf("Dimensions = (%d, %d), want (16, 16)", buf.Width(), buf.Height())
	}
}

func TestLoadImage_Missing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadImage(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadImageFromBytes_Errors(t *testing.T) {
	if _, err := LoadImageFromBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadImageFromBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := LoadImageFromBytes([]byte("definitely not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadImageFromBytes(garbage) error = %v, want ErrUnsupportedFormat", err)
	}
}

// =============================================================================
// Encode Tests
// =============================================================================

func gradientRaster(w, h int) *Raster {
	r, _ := NewRaster(w, h)
	for y := range h {
		for x := range w {
			r.Row(y)[x] = uint8(x*7 + y*3)
		}
	}
	return r
}

func writeRaster(t *testing.T, path string, r *Raster, f Format) {
	t.Helper()
	var out bytes.Buffer
	if err := r.Encode(&out, f); err != nil {
		t.Fatalf("Encode(%v) error = %v", f, err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRaster_EncodeLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := gradientRaster(13, 9)

	for _, f := range Formats() {
		t.Run(f.String(), func(t *testing.T) {
			path := filepath.Join(dir, "plane"+f.Ext())
			writeRaster(t, path, src, f)

			got, err := LoadRaster(path)
			if err != nil {
				t.Fatalf("LoadRaster() error = %v", err)
			}
			if got.Width() != 13 || got.Height() != 9 {
				t.Fatalf("Dimensions = (%d, %d), want (13, 9)", got.Width(), got.Height())
			}
			if !got.Equal(src) {
				t.Errorf("%v round trip changed samples", f)
			}
		})
	}
}

func TestRaster_EncodeBMPHeader(t *testing.T) {
	var out bytes.Buffer
	if err := gradientRaster(4, 4).Encode(&out, FormatBMP); err != nil {
		t.Fatalf("Encode(BMP) error = %v", err)
	}
	data := out.Bytes()
	if len(data) < 30 || data[0] != 'B' || data[1] != 'M' {
		t.Fatalf("output is not a BMP")
	}
	// biBitCount at offset 28: single-channel output is 8 bits per pixel.
	if bpp := int(data[28]) | int(data[29])<<8; bpp != 8 {
		t.Errorf("bits per pixel = %d, want 8", bpp)
	}
}

func TestRaster_EncodeUnsupported(t *testing.T) {
	var out bytes.Buffer
	err := gradientRaster(2, 2).Encode(&out, Format(99))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(Format(99)) error = %v, want ErrUnsupportedFormat", err)
	}
}
