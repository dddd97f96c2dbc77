package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/channel"
	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

// ChannelResult is one channel of a message rendered as a grayscale PNG.
type ChannelResult struct {
	EncodedImage

	// Channel is the 0-based channel index within the encoding.
	Channel int `json:"channel"`

	// Label names the channel ("r", "g", "b", "a") when the encoding has a
	// color order; empty otherwise.
	Label string `json:"label,omitempty"`
}

var bildChannels = map[byte]channel.Channel{
	'r': channel.Red,
	'g': channel.Green,
	'b': channel.Blue,
	'a': channel.Alpha,
}

// ExtractChannel renders a single channel of a message as grayscale.
//
// Color encodings are rendered first and the channel is split out by its
// position in the color order, so index 0 of bgr8 is the blue plane. All
// other encodings read the raw samples of that channel directly; 8-bit
// unsigned data is kept as is, wider or non-unsigned data is normalized.
func ExtractChannel(msg *rosmsg.Image, index int) (*ChannelResult, error) {
	p, err := newPixelReader(msg)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= p.info.Channels {
		return nil, fmt.Errorf("channel %d out of range: %s has %d channels",
			index, msg.Encoding, p.info.Channels)
	}

	var (
		gray  image.Image
		label string
	)
	if p.info.Family == encodings.FamilyColor {
		rendered, err := ToImage(msg)
		if err != nil {
			return nil, err
		}
		label = p.info.Order[index : index+1]
		gray = channel.Extract(rendered, bildChannels[label[0]])
	} else {
		gray = p.gray(index)
	}

	enc, err := encodePNG(gray)
	if err != nil {
		return nil, err
	}
	return &ChannelResult{EncodedImage: *enc, Channel: index, Label: label}, nil
}

// HistogramResult holds 256-bin histograms of a rendered image.
type HistogramResult struct {
	Bins  int   `json:"bins"`
	Red   []int `json:"red"`
	Green []int `json:"green"`
	Blue  []int `json:"blue"`
	Alpha []int `json:"alpha"`
}

// Histogram counts 8-bit channel values over the whole image. Grayscale
// images produce identical red, green and blue histograms.
func Histogram(img image.Image) *HistogramResult {
	h := histogram.NewRGBAHistogram(img)
	return &HistogramResult{
		Bins:  len(h.R.Bins),
		Red:   h.R.Bins,
		Green: h.G.Bins,
		Blue:  h.B.Bins,
		Alpha: h.A.Bins,
	}
}
