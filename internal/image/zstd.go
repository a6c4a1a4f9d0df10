package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// magicZstdPlane identifies the zstd plane container.
//
// Layout: magic(4) + width(uint32 BE) + height(uint32 BE) + zstd frame of
// width*height row-major samples.
const magicZstdPlane = "CSZ1"

// Decoded plane limits. A header is checked against both, and against the
// content size declared by the zstd frame, before any sample is decoded.
const (
	maxPlaneSide   = 1 << 16
	maxPlanePixels = 1 << 28
)

// ErrInvalidMagic is returned when a zstd plane header is not recognized.
var ErrInvalidMagic = errors.New("image: invalid zstd plane magic")

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(maxPlanePixels),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

// EncodeZstd writes the raster as a zstd plane container.
func (r *Raster) EncodeZstd(w io.Writer) error {
	var hdr bytes.Buffer
	hdr.WriteString(magicZstdPlane)
	if err := binary.Write(&hdr, binary.BigEndian, uint32(r.width)); err != nil {
		return err
	}
	if err := binary.Write(&hdr, binary.BigEndian, uint32(r.height)); err != nil {
		return err
	}

	enc := zstdEncPool.Get().(*zstd.Encoder)
	payload := enc.EncodeAll(r.data, hdr.Bytes())
	zstdEncPool.Put(enc)

	_, err := w.Write(payload)
	return err
}

// DecodeZstd reads a raster from a zstd plane container.
func DecodeZstd(rd io.Reader) (*Raster, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("image: read zstd plane: %w", err)
	}
	if len(data) < len(magicZstdPlane)+8 {
		return nil, ErrEmptyData
	}
	if string(data[:len(magicZstdPlane)]) != magicZstdPlane {
		return nil, ErrInvalidMagic
	}

	hdr := data[len(magicZstdPlane):]
	width := binary.BigEndian.Uint32(hdr[0:4])
	height := binary.BigEndian.Uint32(hdr[4:8])
	if width > maxPlaneSide || height > maxPlaneSide || uint64(width)*uint64(height) > maxPlanePixels {
		return nil, fmt.Errorf("%w: zstd plane %dx%d", ErrInvalidDimensions, width, height)
	}
	samples := int(width) * int(height)

	frame := hdr[8:]
	var fh zstd.Header
	if err := fh.Decode(frame); err != nil {
		return nil, fmt.Errorf("image: zstd plane frame header: %w", err)
	}
	if fh.HasFCS && fh.FrameContentSize != uint64(samples) {
		return nil, fmt.Errorf("%w: frame declares %d samples, want %d",
			ErrDataTooSmall, fh.FrameContentSize, samples)
	}

	// dst starts empty; the decoder grows it only as far as the frame really
	// decodes, capped by maxPlanePixels.
	dec := zstdDecPool.Get().(*zstd.Decoder)
	plane, err := dec.DecodeAll(frame, nil)
	zstdDecPool.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("image: decompress zstd plane: %w", err)
	}

	if len(plane) != samples {
		return nil, fmt.Errorf("%w: plane has %d samples, want %d",
			ErrDataTooSmall, len(plane), samples)
	}
	return &Raster{data: plane, width: int(width), height: int(height)}, nil
}
