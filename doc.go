// Package colorsplit converts RGB images into per-channel 8-bit rasters.
//
// # Overview
//
// colorsplit applies one of two pixel-wise colour transforms to an image:
//
//   - Grayscale: one luminance raster, 0.299 R + 0.587 G + 0.114 B
//   - HSV: hue, saturation and value rasters, each scaled to 0..255
//
// Every transform runs on two interchangeable paths. The sequential path
// walks the image once in raster order. The parallel path splits the pixel
// range into one contiguous partition per worker, converts the partitions
// concurrently and scatters the samples back into the output rasters. Both
// paths produce byte-identical rasters for the same input.
//
// # Quick Start
//
//	import "github.com/gogpu/colorsplit"
//
//	buf, err := colorsplit.Load("input.png")
//	if err != nil {
//	    return err
//	}
//
//	c, err := colorsplit.NewConverter(colorsplit.WithWorkers(8))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	res, err := c.Run(buf, colorsplit.KindHSV, colorsplit.ModeParallel)
//	if err != nil {
//	    return err
//	}
//
//	// Writes hue.bmp, saturation.bmp and value.bmp.
//	_, err = res.Save(".", colorsplit.FormatBMP)
//
// # Errors
//
// Every error matches one of ErrInvalidArgument, ErrIOFailure,
// ErrWorkerFailure or ErrWriteFailure and is usually an *OpError carrying
// the operation and the path or argument involved.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Converter, Kind, Mode, Result, Load
//   - internal/colorspace: per-pixel grayscale and HSV math
//   - internal/parallel: partitioning, worker pool, partition executor
//   - internal/composite: sample scatter with coverage checks
//   - internal/image: pixel buffers, rasters, decoding and encoding
//
// The colorsplit command in cmd/colorsplit wraps this package.
package colorsplit
