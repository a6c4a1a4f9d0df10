package main

import (
	"fmt"
	"io"
	"time"

	"github.com/gogpu/colorsplit"
)

// runConvert converts cfg.input once and saves the channels to cfg.outDir.
//
// All arguments are validated before the input is opened.
func runConvert(stdout, stderr io.Writer, cfg *config, modeName, kindName string) error {
	kind, err := colorsplit.ParseKind(kindName)
	if err != nil {
		return err
	}
	mode, err := colorsplit.ParseMode(modeName)
	if err != nil {
		return err
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

	start := time.Now()
	res, err := conv.Run(buf, kind, mode)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	if _, err := res.Save(cfg.outDir, format); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Elapsed: %.4f s\n", elapsed.Seconds())
	return nil
}
