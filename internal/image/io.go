package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage loads an image from the given file path, auto-detecting the
// format from its content. Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
// The result is coerced to opaque RGB.
func LoadImage(path string) (*PixelBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadImageFromBytes decodes an image from a byte slice, auto-detecting the format.
func LoadImageFromBytes(data []byte) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// FromStdImage creates a PixelBuffer from a standard library image.Image.
// Alpha is discarded: colour channels are taken un-premultiplied and the
// pixel is treated as opaque.
func FromStdImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	buf := newPixelBuffer(width, height)

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			dst := buf.data[y*width*bytesPerPixel:]
			for x := range width {
				dst[x*3] = row[x*4]
				dst[x*3+1] = row[x*4+1]
				dst[x*3+2] = row[x*4+2]
			}
		}
		return buf

	case *image.Gray:
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			dst := buf.data[y*width*bytesPerPixel:]
			for x, v := range row {
				dst[x*3], dst[x*3+1], dst[x*3+2] = v, v, v
			}
		}
		return buf
	}

	// Generic slow path for any image type
	for y := range height {
		dst := buf.data[y*width*bytesPerPixel:]
		for x := range width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			dst[x*3] = c.R
			dst[x*3+1] = c.G
			dst[x*3+2] = c.B
		}
	}

	return buf
}

// Encode writes the raster to w in the given format.
func (r *Raster) Encode(w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatBMP:
		err = bmp.Encode(w, r.ToStdImage())
	case FormatPNG:
		err = png.Encode(w, r.ToStdImage())
	case FormatTIFF:
		err = tiff.Encode(w, r.ToStdImage(), &tiff.Options{Compression: tiff.Uncompressed})
	case FormatZstd:
		err = r.EncodeZstd(w)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", f, err)
	}
	return nil
}

// LoadRaster reads a single-channel raster written by Save.
// Colour images are reduced with the standard library gray model.
func LoadRaster(path string) (*Raster, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if filepath.Ext(path) == FormatZstd.Ext() {
		return DecodeZstd(f)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return RasterFromStdImage(img), nil
}

// RasterFromStdImage converts any image to a Raster.
func RasterFromStdImage(img image.Image) *Raster {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	r := &Raster{
		data:   make([]uint8, width*height),
		width:  width,
		height: height,
	}

	if gray, ok := img.(*image.Gray); ok {
		for y := range height {
			start := y * gray.Stride
			copy(r.Row(y), gray.Pix[start:start+width])
		}
		return r
	}

	for y := range height {
		row := r.Row(y)
		for x := range width {
			row[x] = color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray).Y
		}
	}
	return r
}
