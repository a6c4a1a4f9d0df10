package colorsplit

import "github.com/gogpu/colorsplit/internal/image"

// Load reads and decodes the image at path into a PixelBuffer.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP inputs are recognized by content.
// Alpha is discarded. Errors match ErrIOFailure.
func Load(path string) (*PixelBuffer, error) {
	buf, err := image.LoadImage(path)
	if err != nil {
		return nil, opError("load", path, ErrIOFailure, err)
	}
	return buf, nil
}

// Decode decodes an encoded image held in memory.
func Decode(data []byte) (*PixelBuffer, error) {
	buf, err := image.LoadImageFromBytes(data)
	if err != nil {
		return nil, opError("decode", "", ErrIOFailure, err)
	}
	return buf, nil
}

// LoadRaster reads a channel raster previously written by Result.Save.
func LoadRaster(path string) (*Raster, error) {
	r, err := image.LoadRaster(path)
	if err != nil {
		return nil, opError("load raster", path, ErrIOFailure, err)
	}
	return r, nil
}
