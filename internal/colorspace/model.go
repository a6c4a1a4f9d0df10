package colorspace

// PixelFunc converts one RGB pixel and writes one value per output channel
// into dst. len(dst) must be at least the number of channels of the model the
// function belongs to.
type PixelFunc func(r, g, b uint8, dst []uint8)

// Model describes a conversion from RGB to a fixed set of single-channel
// outputs.
type Model struct {
	// Name identifies the model in logs and reports.
	Name string

	// Channels lists the output channel names in the order Apply writes them.
	Channels []string

	// Apply is the per-pixel conversion.
	Apply PixelFunc
}

// NumChannels returns the number of output channels.
func (m Model) NumChannels() int {
	return len(m.Channels)
}

// Channel names.
const (
	ChannelGray       = "grayscale"
	ChannelHue        = "hue"
	ChannelSaturation = "saturation"
	ChannelValue      = "value"
)

// MaxChannels is the largest channel count of any model.
const MaxChannels = 3

// GrayModel produces a single luminance channel.
var GrayModel = Model{
	Name:     "grayscale",
	Channels: []string{ChannelGray},
	Apply: func(r, g, b uint8, dst []uint8) {
		dst[0] = Gray(r, g, b)
	},
}

// HSVModel produces hue, saturation and value channels.
var HSVModel = Model{
	Name:     "hsv",
	Channels: []string{ChannelHue, ChannelSaturation, ChannelValue},
	Apply: func(r, g, b uint8, dst []uint8) {
		dst[0], dst[1], dst[2] = HSV(r, g, b)
	},
}
