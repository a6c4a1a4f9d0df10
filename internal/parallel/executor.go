package parallel

import (
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/gogpu/colorsplit/internal/colorspace"
	"github.com/gogpu/colorsplit/internal/image"
)

// Sample is one computed value of one output channel at one coordinate.
type Sample struct {
	X     int
	Y     int
	Value uint8
}

// Executor converts a PixelBuffer on a fixed WorkerPool, one partition per
// worker.
//
// Thread safety: Run may be called from several goroutines; batches share the
// pool's workers.
type Executor struct {
	pool   *WorkerPool
	logger *slog.Logger
}

// NewExecutor starts an executor with the given number of workers.
// A nil logger discards all output.
func NewExecutor(workers int, logger *slog.Logger) (*Executor, error) {
	pool, err := NewWorkerPool(workers)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{pool: pool, logger: logger}, nil
}

// Workers returns the number of workers, which is also the number of
// partitions per run.
func (e *Executor) Workers() int {
	return e.pool.Workers()
}

// Close stops the worker goroutines.
func (e *Executor) Close() {
	e.pool.Close()
}

// Run applies m to every pixel of buf and returns one sample list per
// channel of m.
//
// Within each list, samples appear in partition order and, inside a
// partition, in ascending index order, so the result is the same for every
// scheduling of the workers. If any worker fails, Run returns the error and
// no samples.
func (e *Executor) Run(buf *image.PixelBuffer, m colorspace.Model) ([][]Sample, error) {
	if buf.IsEmpty() {
		return make([][]Sample, m.NumChannels()), nil
	}

	parts, err := Split(buf.Len(), e.pool.Workers())
	if err != nil {
		return nil, err
	}

	// chunks[k][c] holds channel c of partition k; each task writes only
	// its own chunks[k].
	chunks := make([][][]Sample, len(parts))
	tasks := make([]Task, len(parts))
	for k, p := range parts {
		tasks[k] = func() error {
			chunks[k] = computePartition(buf, m, p)
			return nil
		}
	}

	start := time.Now()
	if err := e.pool.ExecuteAll(tasks); err != nil {
		e.logger.Debug("parallel run failed",
			slog.String("model", m.Name),
			slog.Int("partitions", len(parts)),
			slog.Any("error", err))
		return nil, err
	}
	e.logger.Debug("parallel run",
		slog.String("model", m.Name),
		slog.Int("pixels", buf.Len()),
		slog.Int("bytes", buf.ByteSize()),
		slog.Int("partitions", len(parts)),
		slog.Duration("elapsed", time.Since(start)))

	out := make([][]Sample, m.NumChannels())
	for c := range out {
		out[c] = lo.Flatten(lo.Map(chunks, func(chunk [][]Sample, _ int) []Sample {
			return chunk[c]
		}))
	}
	return out, nil
}

// computePartition converts the pixels of p, returning samples per channel
// in ascending index order.
func computePartition(buf *image.PixelBuffer, m colorspace.Model, p Partition) [][]Sample {
	n := m.NumChannels()
	out := make([][]Sample, n)
	for c := range out {
		out[c] = make([]Sample, 0, p.Len())
	}

	var px [colorspace.MaxChannels]uint8

	for i := p.Start; i < p.End; i++ {
		r, g, b := buf.RGB(i)
		m.Apply(r, g, b, px[:n])

		x, y := buf.Coord(i)
		for c := range out {
			out[c] = append(out[c], Sample{X: x, Y: y, Value: px[c]})
		}
	}
	return out
}
