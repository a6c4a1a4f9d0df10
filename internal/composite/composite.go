// Package composite scatters partitioned channel samples into dense rasters.
package composite

import (
	"errors"
	"fmt"

	"github.com/gogpu/colorsplit/internal/image"
	"github.com/gogpu/colorsplit/internal/parallel"
)

// Scatter errors.
var (
	// ErrOutOfBounds is returned for a sample outside the destination raster.
	ErrOutOfBounds = errors.New("composite: sample out of bounds")

	// ErrCollision is returned when two samples target the same coordinate.
	ErrCollision = errors.New("composite: coordinate written twice")

	// ErrIncomplete is returned when the samples do not cover every coordinate.
	ErrIncomplete = errors.New("composite: raster not fully covered")

	// ErrChannelMismatch is returned when raster and channel counts differ.
	ErrChannelMismatch = errors.New("composite: channel count mismatch")
)

// Scatter writes every sample into dst at its (X, Y).
//
// Each coordinate of dst must be written exactly once. Scatter reports the
// first sample that breaks this; dst is left partially written in that case
// and must be discarded.
func Scatter(dst *image.Raster, samples []parallel.Sample) error {
	width, height := dst.Bounds()
	if len(samples) > width*height {
		return fmt.Errorf("%w: %d samples for %dx%d raster", ErrCollision, len(samples), width, height)
	}

	written := make([]bool, width*height)
	data := dst.Data()

	for _, s := range samples {
		if s.X < 0 || s.X >= width || s.Y < 0 || s.Y >= height {
			return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, s.X, s.Y, width, height)
		}
		i := s.Y*width + s.X
		if written[i] {
			return fmt.Errorf("%w: (%d, %d)", ErrCollision, s.X, s.Y)
		}
		written[i] = true
		data[i] = s.Value
	}

	if len(samples) != width*height {
		return fmt.Errorf("%w: %d of %d samples", ErrIncomplete, len(samples), width*height)
	}
	return nil
}

// ScatterAll scatters channels[c] into dsts[c] for every channel.
func ScatterAll(dsts []*image.Raster, channels [][]parallel.Sample) error {
	if len(dsts) != len(channels) {
		return fmt.Errorf("%w: %d rasters, %d channels", ErrChannelMismatch, len(dsts), len(channels))
	}
	for c := range dsts {
		if err := Scatter(dsts[c], channels[c]); err != nil {
			return fmt.Errorf("channel %d: %w", c, err)
		}
	}
	return nil
}
