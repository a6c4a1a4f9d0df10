package colorsplit

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/colorsplit/internal/colorspace"
	"github.com/gogpu/colorsplit/internal/composite"
	"github.com/gogpu/colorsplit/internal/image"
	"github.com/gogpu/colorsplit/internal/parallel"
)

// Converter turns RGB images into channel rasters.
//
// A Converter owns a fixed pool of worker goroutines for the parallel path.
// The sequential path never touches the pool. Both paths produce
// byte-identical rasters for the same input and kind.
//
// Thread safety: Run, Sequential and Parallel may be called concurrently.
// Close must not overlap any of them.
type Converter struct {
	exec   *parallel.Executor
	pool   *image.Pool
	logger *slog.Logger
}

// NewConverter creates a converter and starts its workers.
//
// It returns an error matching ErrInvalidArgument if the worker count is
// less than 1.
func NewConverter(opts ...Option) (*Converter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	exec, err := parallel.NewExecutor(o.workers, o.logger)
	if err != nil {
		return nil, opError("configure workers", fmt.Sprint(o.workers), ErrInvalidArgument, err)
	}
	return &Converter{exec: exec, pool: o.pool, logger: o.logger}, nil
}

// Workers returns the number of parallel workers.
func (c *Converter) Workers() int {
	return c.exec.Workers()
}

// Close stops the worker goroutines. The converter must not be used
// afterwards.
func (c *Converter) Close() {
	c.exec.Close()
}

// Run converts buf with the given kind on the path selected by mode.
func (c *Converter) Run(buf *PixelBuffer, kind Kind, mode Mode) (*Result, error) {
	switch mode {
	case ModeSequential:
		return c.Sequential(buf, kind)
	case ModeParallel:
		return c.Parallel(buf, kind)
	default:
		return nil, opError("run", mode.String(), ErrInvalidArgument, errors.New("unknown mode"))
	}
}

// Sequential converts buf in a single pass over rows then columns, writing
// each value straight into its raster.
func (c *Converter) Sequential(buf *PixelBuffer, kind Kind) (*Result, error) {
	m, ok := kind.model()
	if !ok {
		return nil, opError("sequential", kind.String(), ErrInvalidArgument, errors.New("unknown transform"))
	}

	start := time.Now()
	res, err := c.newResult(kind, buf.Width(), buf.Height())
	if err != nil {
		return nil, err
	}

	n := m.NumChannels()
	rows := make([][]uint8, n)
	var px [colorspace.MaxChannels]uint8

	for y := range buf.Height() {
		src := buf.Row(y)
		for ch := range rows {
			rows[ch] = res.Channels[ch].Raster.Row(y)
		}
		for x := range buf.Width() {
			m.Apply(src[3*x], src[3*x+1], src[3*x+2], px[:n])
			for ch, row := range rows {
				row[x] = px[ch]
			}
		}
	}

	c.logger.Debug("sequential run",
		slog.String("model", m.Name),
		slog.Int("pixels", buf.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// Parallel converts buf on the worker pool: the pixel range is split into
// one contiguous partition per worker and the per-partition samples are
// scattered into the output rasters.
//
// If any worker fails, Parallel returns an error matching ErrWorkerFailure
// and no result.
func (c *Converter) Parallel(buf *PixelBuffer, kind Kind) (*Result, error) {
	m, ok := kind.model()
	if !ok {
		return nil, opError("parallel", kind.String(), ErrInvalidArgument, errors.New("unknown transform"))
	}

	samples, err := c.exec.Run(buf, m)
	if err != nil {
		return nil, opError("parallel", kind.String(), ErrWorkerFailure, err)
	}

	res, err := c.newResult(kind, buf.Width(), buf.Height())
	if err != nil {
		return nil, err
	}
	rasters := make([]*image.Raster, len(res.Channels))
	for i, ch := range res.Channels {
		rasters[i] = ch.Raster
	}
	if err := composite.ScatterAll(rasters, samples); err != nil {
		res.Release()
		return nil, opError("composite", kind.String(), ErrWorkerFailure, err)
	}
	return res, nil
}

// newResult allocates zeroed rasters for every channel of kind.
func (c *Converter) newResult(kind Kind, width, height int) (*Result, error) {
	names := kind.Channels()
	res := &Result{
		Kind:     kind,
		Width:    width,
		Height:   height,
		Channels: make([]Channel, len(names)),
		pool:     c.pool,
		logger:   c.logger,
	}
	for i, name := range names {
		r, err := c.newRaster(width, height)
		if err != nil {
			res.Release()
			return nil, opError("allocate", name, ErrInvalidArgument, err)
		}
		res.Channels[i] = Channel{Name: name, Raster: r}
	}
	return res, nil
}

func (c *Converter) newRaster(width, height int) (*Raster, error) {
	if c.pool != nil {
		if r := c.pool.Get(width, height); r != nil {
			return r, nil
		}
	}
	return image.NewRaster(width, height)
}
