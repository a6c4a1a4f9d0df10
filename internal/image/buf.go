// Package image provides the pixel containers used by colorsplit.
//
// PixelBuffer is the read-only RGB input shared by every worker; Raster is a
// dense single-channel output. Both store samples in one contiguous,
// row-major slice with no padding, so a flat index i addresses the pixel at
// (i % width, i / width).
package image

import (
	"bytes"
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")
)

// bytesPerPixel is the size of one RGB pixel in a PixelBuffer.
const bytesPerPixel = 3

// PixelBuffer is an immutable 24-bit RGB image.
//
// Thread safety: PixelBuffer has no mutating methods once constructed and is
// safe for concurrent reads without synchronization.
type PixelBuffer struct {
	data   []byte
	width  int
	height int
}

// NewPixelBuffer creates a pixel buffer from packed RGB data.
// The data is copied; len(rgb) must be at least 3*width*height.
func NewPixelBuffer(width, height int, rgb []byte) (*PixelBuffer, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}

	size := width * height * bytesPerPixel
	if len(rgb) < size {
		return nil, ErrDataTooSmall
	}

	data := make([]byte, size)
	copy(data, rgb)

	return &PixelBuffer{
		data:   data,
		width:  width,
		height: height,
	}, nil
}

// newPixelBuffer allocates a zeroed buffer for package-internal builders.
func newPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		data:   make([]byte, width*height*bytesPerPixel),
		width:  width,
		height: height,
	}
}

// Width returns the image width in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *PixelBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Len returns the number of pixels.
func (b *PixelBuffer) Len() int {
	return b.width * b.height
}

// IsEmpty returns true if the image has zero dimensions.
func (b *PixelBuffer) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}

// RGB returns the pixel at flat index i.
// The caller must ensure 0 <= i < Len().
func (b *PixelBuffer) RGB(i int) (r, g, bl uint8) {
	p := b.data[i*bytesPerPixel : i*bytesPerPixel+bytesPerPixel : i*bytesPerPixel+bytesPerPixel]
	return p[0], p[1], p[2]
}

// RGBAt returns the pixel at (x, y).
// Returns (0, 0, 0) if coordinates are out of bounds.
func (b *PixelBuffer) RGBAt(x, y int) (r, g, bl uint8) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0, 0, 0
	}
	return b.RGB(y*b.width + x)
}

// Coord converts a flat index into (x, y).
func (b *PixelBuffer) Coord(i int) (x, y int) {
	return i % b.width, i / b.width
}

// Row returns the packed RGB bytes of row y.
// Returns nil if y is out of bounds. The slice must not be modified.
func (b *PixelBuffer) Row(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.width * bytesPerPixel
	return b.data[start : start+b.width*bytesPerPixel : start+b.width*bytesPerPixel]
}

// ByteSize returns the total size of the pixel data in bytes.
func (b *PixelBuffer) ByteSize() int {
	return len(b.data)
}

// Equal reports whether both buffers have the same size and pixels.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height && bytes.Equal(b.data, o.data)
}
