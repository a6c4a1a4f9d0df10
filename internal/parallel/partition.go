// Package parallel splits a flat pixel buffer across a fixed set of workers
// and collects the per-pixel results.
//
// Work is partitioned once, up front: Split produces one contiguous index
// range per worker, the last range absorbing the remainder. Each worker reads
// the shared, immutable input and writes only to slices it owns, so the
// compute phase needs no locks. The single synchronization point is the
// barrier at the end of WorkerPool.ExecuteAll.
package parallel

import (
	"errors"
	"fmt"
)

// Partition errors.
var (
	// ErrInvalidWorkers is returned when the worker count is less than one.
	ErrInvalidWorkers = errors.New("parallel: worker count must be at least 1")

	// ErrNegativeTotal is returned when the item count is negative.
	ErrNegativeTotal = errors.New("parallel: negative total")
)

// Partition is a half-open range [Start, End) of flat pixel indices.
type Partition struct {
	Start int
	End   int
}

// Len returns the number of indices in the partition.
func (p Partition) Len() int {
	return p.End - p.Start
}

// Empty reports whether the partition covers no indices.
func (p Partition) Empty() bool {
	return p.End <= p.Start
}

// String implements fmt.Stringer.
func (p Partition) String() string {
	return fmt.Sprintf("[%d, %d)", p.Start, p.End)
}

// Split divides [0, total) into exactly workers contiguous partitions.
//
// Every partition but the last has total/workers indices; the last one ends
// at total and so also holds the remainder. When workers > total the chunk
// size is zero and all partitions before the last are empty.
func Split(total, workers int) ([]Partition, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTotal, total)
	}

	chunk := total / workers
	parts := make([]Partition, workers)
	for i := range workers {
		parts[i] = Partition{Start: i * chunk, End: (i + 1) * chunk}
	}
	parts[workers-1].End = total

	return parts, nil
}
