package colorsplit

import (
	"fmt"

	"github.com/gogpu/colorsplit/internal/colorspace"
)

// Kind selects the colour transform.
type Kind uint8

const (
	// KindGrayscale produces one luminance raster.
	KindGrayscale Kind = iota

	// KindHSV produces hue, saturation and value rasters.
	KindHSV
)

// ParseKind parses a transform kind as given on the command line:
// "g" for grayscale or "hsv".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "g":
		return KindGrayscale, nil
	case "hsv":
		return KindHSV, nil
	default:
		return 0, opError("parse transform", s, ErrInvalidArgument,
			fmt.Errorf("unknown transform %q, want g or hsv", s))
	}
}

// String returns the command-line name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGrayscale:
		return "g"
	case KindHSV:
		return "hsv"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Channels returns the names of the rasters the kind produces, in order.
func (k Kind) Channels() []string {
	m, ok := k.model()
	if !ok {
		return nil
	}
	return append([]string(nil), m.Channels...)
}

// model returns the colour model behind k.
func (k Kind) model() (colorspace.Model, bool) {
	switch k {
	case KindGrayscale:
		return colorspace.GrayModel, true
	case KindHSV:
		return colorspace.HSVModel, true
	default:
		return colorspace.Model{}, false
	}
}

// Mode selects the execution path.
type Mode uint8

const (
	// ModeParallel partitions the image across the converter's workers.
	ModeParallel Mode = iota

	// ModeSequential converts the image in a single raster-order pass.
	ModeSequential
)

// ParseMode parses "parallel" or "sequential".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "parallel":
		return ModeParallel, nil
	case "sequential":
		return ModeSequential, nil
	default:
		return 0, opError("parse mode", s, ErrInvalidArgument,
			fmt.Errorf("unknown mode %q, want parallel or sequential", s))
	}
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeParallel:
		return "parallel"
	case ModeSequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}
