package colorsplit

import (
	"log/slog"
	"runtime"

	"github.com/gogpu/colorsplit/internal/image"
)

// Option configures a Converter during creation.
//
// Example:
//
//	// One worker per available CPU
//	c, err := colorsplit.NewConverter()
//
//	// Fixed worker count with raster reuse across runs
//	c, err := colorsplit.NewConverter(
//	    colorsplit.WithWorkers(8),
//	    colorsplit.WithRasterPool(colorsplit.NewRasterPool(4)),
//	)
type Option func(*options)

// options holds optional configuration for Converter creation.
type options struct {
	workers int
	pool    *image.Pool
	logger  *slog.Logger
}

// defaultOptions returns the default converter options.
func defaultOptions() options {
	return options{
		workers: DefaultWorkers(),
		pool:    nil, // rasters are allocated per run
		logger:  nil, // resolved to Logger() in NewConverter
	}
}

// DefaultWorkers returns the worker count used when WithWorkers is not given:
// the number of CPUs the Go scheduler may use.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// WithWorkers sets the number of parallel workers, which is also the number
// of partitions per parallel run. n must be at least 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRasterPool makes the converter take output rasters from p.
// Call Result.Release to hand them back once a result is no longer needed.
func WithRasterPool(p *RasterPool) Option {
	return func(o *options) {
		o.pool = p
	}
}

// WithLogger sets the logger for this converter, overriding the package
// logger configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
