package colorsplit

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/colorsplit/internal/image"
)

// Re-exported image types.
type (
	// PixelBuffer is an immutable RGB8 image in row-major order.
	PixelBuffer = image.PixelBuffer

	// Raster is a single-channel 8-bit image in row-major order.
	Raster = image.Raster

	// RasterPool recycles output rasters between runs.
	RasterPool = image.Pool

	// Format is an output file format.
	Format = image.Format
)

// Output formats.
const (
	FormatBMP  = image.FormatBMP
	FormatPNG  = image.FormatPNG
	FormatTIFF = image.FormatTIFF
	FormatZstd = image.FormatZstd
)

// NewPixelBuffer creates a PixelBuffer from packed RGB bytes.
func NewPixelBuffer(width, height int, rgb []byte) (*PixelBuffer, error) {
	buf, err := image.NewPixelBuffer(width, height, rgb)
	if err != nil {
		return nil, opError("new buffer", fmt.Sprintf("%dx%d", width, height), ErrInvalidArgument, err)
	}
	return buf, nil
}

// NewRasterPool creates a pool keeping at most maxPerSize rasters per
// dimension. Zero means unlimited.
func NewRasterPool(maxPerSize int) *RasterPool {
	return image.NewPool(maxPerSize)
}

// ParseFormat parses an output format name such as "bmp" or "png".
func ParseFormat(name string) (Format, error) {
	f, err := image.ParseFormat(name)
	if err != nil {
		return 0, opError("parse format", name, ErrInvalidArgument, err)
	}
	return f, nil
}

// Formats returns every supported output format.
func Formats() []Format {
	return image.Formats()
}

// Channel is one named output raster.
type Channel struct {
	Name   string
	Raster *Raster
}

// Result holds the rasters produced by one conversion. Every raster has the
// input's dimensions.
type Result struct {
	Kind     Kind
	Width    int
	Height   int
	Channels []Channel

	pool   *image.Pool
	logger *slog.Logger
}

// Raster returns the raster of the named channel, or nil.
func (r *Result) Raster(name string) *Raster {
	for _, ch := range r.Channels {
		if ch.Name == name {
			return ch.Raster
		}
	}
	return nil
}

// Equal reports whether both results have the same kind, dimensions and
// byte-identical rasters.
func (r *Result) Equal(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.Kind != o.Kind || r.Width != o.Width || r.Height != o.Height || len(r.Channels) != len(o.Channels) {
		return false
	}
	for i, ch := range r.Channels {
		if ch.Name != o.Channels[i].Name || !ch.Raster.Equal(o.Channels[i].Raster) {
			return false
		}
	}
	return true
}

// Release hands the rasters back to the converter's pool, if any.
// The result must not be used afterwards.
func (r *Result) Release() {
	if r.pool != nil {
		for _, ch := range r.Channels {
			r.pool.Put(ch.Raster)
		}
	}
	r.Channels = nil
}

// Path returns the file path channel name is saved to in dir.
func Path(dir, name string, f Format) string {
	return filepath.Join(dir, name+f.Ext())
}

// Save writes every channel to dir as <name><ext> and returns the paths in
// channel order.
//
// Channels are encoded concurrently into temporary files in dir, which are
// renamed into place only once all of them have been written. Files already
// present under the output names are moved aside first and restored if the
// save fails, so on failure dir holds exactly what it held before and the
// error matches ErrWriteFailure.
func (r *Result) Save(dir string, f Format) ([]string, error) {
	if !f.IsValid() {
		return nil, opError("save", f.String(), ErrInvalidArgument, image.ErrUnsupportedFormat)
	}

	paths := make([]string, len(r.Channels))
	temps := make([]string, len(r.Channels))
	for i, ch := range r.Channels {
		paths[i] = Path(dir, ch.Name, f)
	}

	var g errgroup.Group
	for i, ch := range r.Channels {
		g.Go(func() error {
			tmp, err := writeTemp(dir, ch, f)
			temps[i] = tmp
			if err != nil {
				return opError("save", paths[i], ErrWriteFailure, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.removeAll(temps)
		return nil, err
	}

	// backups[i] holds the previous file at paths[i] while the new one is
	// moved in; committed counts the channels already in place.
	backups := make([]string, len(paths))
	committed := 0
	rollback := func() {
		r.removeAll(temps[committed:])
		r.removeAll(paths[:committed])
		for i, b := range backups {
			if b == "" {
				continue
			}
			if err := os.Rename(b, paths[i]); err != nil {
				r.log().Warn("restore previous output", slog.String("path", paths[i]), slog.Any("error", err))
			}
		}
	}

	for i := range temps {
		b, err := moveAside(dir, paths[i])
		if err != nil {
			rollback()
			return nil, opError("save", paths[i], ErrWriteFailure, err)
		}
		backups[i] = b
		if err := os.Rename(temps[i], paths[i]); err != nil {
			rollback()
			return nil, opError("save", paths[i], ErrWriteFailure, err)
		}
		committed++
	}
	r.removeAll(backups)

	r.log().Debug("saved result",
		slog.String("kind", r.Kind.String()),
		slog.String("format", f.String()),
		slog.Any("paths", paths))
	return paths, nil
}

// log returns the logger of the converter that produced r.
func (r *Result) log() *slog.Logger {
	if r.logger == nil {
		return Logger()
	}
	return r.logger
}

// writeTemp encodes ch into a new temporary file in dir and returns its
// name. The name is returned even on failure so the caller can remove it.
func writeTemp(dir string, ch Channel, f Format) (string, error) {
	file, err := os.CreateTemp(dir, "."+ch.Name+"-*"+f.Ext())
	if err != nil {
		return "", err
	}
	name := file.Name()

	if err := ch.Raster.Encode(file, f); err != nil {
		_ = file.Close()
		return name, err
	}
	if err := file.Chmod(0o644); err != nil {
		_ = file.Close()
		return name, err
	}
	return name, file.Close()
}

// moveAside renames an existing regular file at path to a fresh hidden name
// in dir and returns that name. It returns "" if there is nothing to move.
func moveAside(dir, path string) (string, error) {
	fi, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !fi.Mode().IsRegular() {
		return "", nil
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.orig")
	if err != nil {
		return "", err
	}
	name := file.Name()
	_ = file.Close()

	if err := os.Rename(path, name); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}

// removeAll deletes the given files, ignoring empty names and files that
// are already gone.
func (r *Result) removeAll(names []string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			r.log().Warn("remove partial output", slog.String("path", name), slog.Any("error", err))
		}
	}
}
