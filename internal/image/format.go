package image

import (
	"fmt"
	"strings"
)

// Format is an on-disk encoding for single-channel rasters.
type Format uint8

const (
	// FormatBMP is an 8-bit paletted grayscale BMP.
	FormatBMP Format = iota

	// FormatPNG is an 8-bit grayscale PNG.
	FormatPNG

	// FormatTIFF is an uncompressed 8-bit grayscale TIFF.
	FormatTIFF

	// FormatZstd is a raw row-major plane with a small header,
	// compressed with zstd.
	FormatZstd

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a raster file format.
type FormatInfo struct {
	// Name is the identifier accepted by ParseFormat.
	Name string

	// Ext is the file extension including the leading dot.
	Ext string
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatBMP:  {Name: "bmp", Ext: ".bmp"},
	FormatPNG:  {Name: "png", Ext: ".png"},
	FormatTIFF: {Name: "tiff", Ext: ".tiff"},
	FormatZstd: {Name: "zst", Ext: ".zst"},
}

// Info returns the FormatInfo for this format.
// Returns a zero FormatInfo for invalid formats.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	return f < formatCount
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return f.Info().Ext
}

// String returns the format name.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Format(%d)", f)
	}
	return formatInfoTable[f].Name
}

// ParseFormat returns the format with the given name (case-insensitive).
// "tif" is accepted as an alias for "tiff".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "tif" {
		name = "tiff"
	}
	for f := range formatCount {
		if formatInfoTable[f].Name == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Formats returns all supported formats in declaration order.
func Formats() []Format {
	out := make([]Format, 0, formatCount)
	for f := range formatCount {
		out = append(out, f)
	}
	return out
}
