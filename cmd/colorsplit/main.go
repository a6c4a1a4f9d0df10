// Command colorsplit converts an RGB image into grayscale or HSV channel
// images.
//
// Usage:
//
//	colorsplit [flags] <g|hsv>
//	colorsplit compare [flags] <g|hsv>
//
// Exit status is 0 on success, 2 for invalid arguments and 1 for any other
// failure.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/colorsplit"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, colorsplit.ErrInvalidArgument):
		return 2
	default:
		return 1
	}
}

// config holds the flags shared by the root command and compare.
type config struct {
	input   string
	outDir  string
	format  string
	workers int
	verbose bool
}

func (c *config) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.input, "input", "i", "input.png", "input image")
	fs.StringVarP(&c.outDir, "out-dir", "o", ".", "output directory")
	fs.StringVarP(&c.format, "format", "f", colorsplit.FormatBMP.String(), "output format ("+formatNames()+")")
	fs.IntVarP(&c.workers, "workers", "w", colorsplit.DefaultWorkers(), "number of parallel workers")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")
}

func formatNames() string {
	names := make([]string, 0, len(colorsplit.Formats()))
	for _, f := range colorsplit.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// installLogger routes library logging to stderr.
func (c *config) installLogger(stderr io.Writer) {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	colorsplit.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// kindArg validates the single positional transform argument.
func kindArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &colorsplit.OpError{
			Op:   "parse arguments",
			Kind: colorsplit.ErrInvalidArgument,
			Err:  fmt.Errorf("want exactly one transform (g or hsv), got %d arguments", len(args)),
		}
	}
	_, err := colorsplit.ParseKind(args[0])
	return err
}

func flagError(_ *cobra.Command, err error) error {
	return &colorsplit.OpError{Op: "parse flags", Kind: colorsplit.ErrInvalidArgument, Err: err}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfg  config
		mode string
	)

	cmd := &cobra.Command{
		Use:   "colorsplit [flags] <g|hsv>",
		Short: "Split an RGB image into grayscale or HSV channel images",
		Long: `colorsplit converts an RGB image into grayscale (g) or hue, saturation
and value (hsv) channel images, one 8-bit file per channel.`,
		Args:          kindArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.OutOrStdout(), stderr, &cfg, mode, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(flagError)

	cfg.addFlags(cmd.Flags())
	cmd.Flags().StringVarP(&mode, "mode", "m", "parallel", "execution path (parallel, sequential)")

	cmd.AddCommand(newCompareCmd(stderr))
	return cmd
}
