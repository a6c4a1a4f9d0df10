package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorsplit"
)

// errMismatch reports that the two execution paths disagreed.
var errMismatch = errors.New("parallel result differs from sequential")

func newCompareCmd(stderr io.Writer) *cobra.Command {
	var (
		cfg    config
		repeat int
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "compare [flags] <g|hsv>",
		Short: "Time the sequential and parallel paths and check they agree",
		Long: `compare runs both execution paths on the same input, verifies that they
produce identical rasters and reports the best time of each. Nothing is
written unless --save is given.`,
		Args: kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.OutOrStdout(), stderr, &cfg, args[0], repeat, save)
		},
	}

	cfg.addFlags(cmd.Flags())
	cmd.Flags().IntVar(&repeat, "repeat", 1, "number of timed runs per path")
	cmd.Flags().BoolVar(&save, "save", false, "save the parallel result to --out-dir")
	return cmd
}

func runCompare(stdout, stderr io.Writer, cfg *config, kindName string, repeat int, save bool) error {
	kind, err := colorsplit.ParseKind(kindName)
	if err != nil {
		return err
	}
	if repeat < 1 {
		return &colorsplit.OpError{
			Op:     "parse flags",
			Target: fmt.Sprint(repeat),
			Kind:   colorsplit.ErrInvalidArgument,
			Err:    errors.New("--repeat must be at least 1"),
		}
	}
	format, err := colorsplit.ParseFormat(cfg.format)
	if err != nil {
		return err
	}

	cfg.installLogger(stderr)
	conv, err := colorsplit.NewConverter(colorsplit.WithWorkers(cfg.workers))
	if err != nil {
		return err
	}
	defer conv.Close()

	buf, err := colorsplit.Load(cfg.input)
	if err != nil {
		return err
	}

	seq, seqBest, err := timeRuns(conv, buf, kind, colorsplit.ModeSequential, repeat)
	if err != nil {
		return err
	}
	par, parBest, err := timeRuns(conv, buf, kind, colorsplit.ModeParallel, repeat)
	if err != nil {
		return err
	}
	if !seq.Equal(par) {
		return fmt.Errorf("colorsplit: compare %s: %w", kind, errMismatch)
	}

	if save {
		if _, err := par.Save(cfg.outDir, format); err != nil {
			return err
		}
	}

	comparison{
		kind:       kind.String(),
		width:      buf.Width(),
		height:     buf.Height(),
		workers:    conv.Workers(),
		repeat:     repeat,
		sequential: seqBest,
		parallel:   parBest,
	}.write(stdout)
	return nil
}

// timeRuns runs one path repeat times and returns the last result and the
// fastest run.
func timeRuns(conv *colorsplit.Converter, buf *colorsplit.PixelBuffer, kind colorsplit.Kind, mode colorsplit.Mode, repeat int) (*colorsplit.Result, time.Duration, error) {
	var (
		res  *colorsplit.Result
		best time.Duration
	)
	for i := range repeat {
		start := time.Now()
		r, err := conv.Run(buf, kind, mode)
		d := time.Since(start)
		if err != nil {
			return nil, 0, err
		}
		res = r
		if i == 0 || d < best {
			best = d
		}
	}
	return res, best, nil
}
