package image

import (
	"bytes"
	"image"
)

// Raster is a dense 8-bit single-channel image.
//
// A new Raster is zero-filled. Thread safety: concurrent reads are safe;
// writes to distinct rows from different goroutines are safe; everything else
// requires external synchronization.
type Raster struct {
	data   []uint8
	width  int
	height int
}

// NewRaster creates a zero-filled raster with the given dimensions.
func NewRaster(width, height int) (*Raster, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	return &Raster{
		data:   make([]uint8, width*height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int {
	return r.width
}

// Height returns the raster height in pixels.
func (r *Raster) Height() int {
	return r.height
}

// Bounds returns the raster dimensions as (width, height).
func (r *Raster) Bounds() (int, int) {
	return r.width, r.height
}

// Len returns the number of samples.
func (r *Raster) Len() int {
	return len(r.data)
}

// Data returns the raw row-major samples.
func (r *Raster) Data() []uint8 {
	return r.data
}

// Row returns the samples of row y, or nil if y is out of bounds.
func (r *Raster) Row(y int) []uint8 {
	if y < 0 || y >= r.height {
		return nil
	}
	start := y * r.width
	return r.data[start : start+r.width : start+r.width]
}

// At returns the sample at (x, y), or 0 if out of bounds.
func (r *Raster) At(x, y int) uint8 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.data[y*r.width+x]
}

// Clear sets all samples to zero.
func (r *Raster) Clear() {
	clear(r.data)
}

// Equal reports whether both rasters have the same size and samples.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.width == o.width && r.height == o.height && bytes.Equal(r.data, o.data)
}

// ToStdImage returns the raster as an *image.Gray sharing no memory with r.
func (r *Raster) ToStdImage() *image.Gray {
	gray := image.NewGray(image.Rect(0, 0, r.width, r.height))
	for y := range r.height {
		copy(gray.Pix[y*gray.Stride:], r.Row(y))
	}
	return gray
}
