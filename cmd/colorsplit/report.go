package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

// cpuSummary describes the host: architecture, logical CPUs and the SIMD
// extensions relevant to per-pixel loops.
func cpuSummary() string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				feats = append(feats, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if cpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
	}

	s := fmt.Sprintf("%s/%s, %d logical CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	if len(feats) > 0 {
		s += ", " + strings.Join(feats, " ")
	}
	return s
}

// comparison is the outcome of timing both execution paths.
type comparison struct {
	kind       string
	width      int
	height     int
	workers    int
	repeat     int
	sequential time.Duration
	parallel   time.Duration
}

func (c comparison) speedup() float64 {
	if c.parallel <= 0 {
		return 0
	}
	return c.sequential.Seconds() / c.parallel.Seconds()
}

func (c comparison) write(w io.Writer) {
	printer.Fprintf(w, "Image:      %dx%d (%d pixels)\n", c.width, c.height, c.width*c.height)
	printer.Fprintf(w, "Transform:  %s\n", c.kind)
	printer.Fprintf(w, "Host:       %s\n", cpuSummary())
	printer.Fprintf(w, "Workers:    %d\n", c.workers)
	printer.Fprintf(w, "Runs:       %d (best shown)\n", c.repeat)
	printer.Fprintf(w, "Sequential: %.4f s\n", c.sequential.Seconds())
	printer.Fprintf(w, "Parallel:   %.4f s\n", c.parallel.Seconds())
	printer.Fprintf(w, "Speedup:    %.2fx\n", c.speedup())
	printer.Fprintf(w, "Identical:  yes\n")
}
