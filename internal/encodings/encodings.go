package encodings

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrUnknownEncoding is returned when a name is neither a named encoding nor
// a generic <bits><type>C<channels> encoding.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Commonly used named encodings.
const (
	RGB8   = "rgb8"
	RGBA8  = "rgba8"
	RGB16  = "rgb16"
	RGBA16 = "rgba16"
	BGR8   = "bgr8"
	BGRA8  = "bgra8"
	BGR16  = "bgr16"
	BGRA16 = "bgra16"
	Mono8  = "mono8"
	Mono16 = "mono16"

	BayerRGGB8  = "bayer_rggb8"
	BayerBGGR8  = "bayer_bggr8"
	BayerGBRG8  = "bayer_gbrg8"
	BayerGRBG8  = "bayer_grbg8"
	BayerRGGB16 = "bayer_rggb16"
	BayerBGGR16 = "bayer_bggr16"
	BayerGBRG16 = "bayer_gbrg16"
	BayerGRBG16 = "bayer_grbg16"

	YUV422     = "yuv422"
	YUV422YUY2 = "yuv422_yuy2"
	UYVY       = "uyvy"
	YUYV       = "yuyv"
)

// Kind is the element type of a channel, matching the type letter of the
// generic form.
type Kind string

const (
	Unsigned Kind = "U"
	Signed   Kind = "S"
	Float    Kind = "F"
)

// Family groups encodings by how their channels are interpreted.
type Family string

const (
	FamilyColor   Family = "color"
	FamilyMono    Family = "mono"
	FamilyBayer   Family = "bayer"
	FamilyYUV     Family = "yuv"
	FamilyGeneric Family = "generic"
)

// Families returns every family in display order.
func Families() []Family {
	return []Family{FamilyColor, FamilyMono, FamilyBayer, FamilyYUV, FamilyGeneric}
}

// Info is the full classification of an encoding name.
type Info struct {
	// Name is the encoding name exactly as looked up.
	Name string `json:"name" yaml:"name"`

	// Channels is the number of channels per pixel. Always positive.
	Channels int `json:"channels" yaml:"channels"`

	// BitDepth is the number of bits per channel: 8, 16, 32 or 64.
	BitDepth int `json:"bit_depth" yaml:"bit_depth"`

	// Kind is the element type of every channel.
	Kind Kind `json:"kind" yaml:"kind"`

	// Family is the interpretation group of the encoding.
	Family Family `json:"family" yaml:"family"`

	// Order is the channel order for named encodings ("rgb", "bgra",
	// "rggb", "uyvy", ...). Empty for mono and generic encodings.
	Order string `json:"order,omitempty" yaml:"order"`
}

// HasAlpha reports whether the encoding carries an alpha channel.
func (i Info) HasAlpha() bool {
	return i.Family == FamilyColor && i.Channels == 4
}

// BytesPerPixel returns the storage size of one pixel. Sizes that do not fit
// an int saturate at math.MaxInt.
func (i Info) BytesPerPixel() int {
	size := i.BitDepth / 8
	if size > 0 && i.Channels > math.MaxInt/size {
		return math.MaxInt
	}
	return i.Channels * size
}

// genericPattern matches <bits><type>C<channels> with an optional channel count.
var genericPattern = regexp.MustCompile(`^(8|16|32|64)([USF])C([0-9]*)$`)

// Lookup classifies an encoding name.
//
// Named encodings are checked first; anything else must match the generic
// pattern. A generic name with an explicit zero channel count is rejected.
//
// # Errors
//
//   - Returns an error wrapping ErrUnknownEncoding if the name is not recognized
func Lookup(name string) (Info, error) {
	if info, ok := named[name]; ok {
		return info, nil
	}
	return parseGeneric(name)
}

func parseGeneric(name string) (Info, error) {
	m := genericPattern.FindStringSubmatch(name)
	if m == nil {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	// The pattern restricts m[1] to digits, so Atoi cannot fail.
	bits, _ := strconv.Atoi(m[1])

	channels := 1
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %q: channel count out of range", ErrUnknownEncoding, name)
		}
		if n == 0 {
			return Info{}, fmt.Errorf("%w: %q: zero channels", ErrUnknownEncoding, name)
		}
		channels = n
	}

	return Info{
		Name:     name,
		Channels: channels,
		BitDepth: bits,
		Kind:     Kind(m[2]),
		Family:   FamilyGeneric,
	}, nil
}

// NumChannels returns the number of channels of an encoding.
//
// For generic names without a channel suffix, such as "8UC", the result is 1.
func NumChannels(name string) (int, error) {
	info, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return info.Channels, nil
}

// BitDepth returns the number of bits per channel of an encoding.
func BitDepth(name string) (int, error) {
	info, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return info.BitDepth, nil
}

// Generic builds the generic name for the given depth, kind and channel count,
// e.g. Generic(16, Unsigned, 3) == "16UC3".
func Generic(bits int, kind Kind, channels int) string {
	return fmt.Sprintf("%d%sC%d", bits, kind, channels)
}

func family(name string) Family {
	info, err := Lookup(name)
	if err != nil {
		return ""
	}
	return info.Family
}

// IsColor reports whether name is an RGB or BGR encoding, with or without alpha.
func IsColor(name string) bool { return family(name) == FamilyColor }

// IsMono reports whether name is mono8 or mono16.
func IsMono(name string) bool { return family(name) == FamilyMono }

// IsBayer reports whether name is a Bayer mosaic encoding.
func IsBayer(name string) bool { return family(name) == FamilyBayer }

// IsGeneric reports whether name is a valid <bits><type>C<channels> encoding.
func IsGeneric(name string) bool { return family(name) == FamilyGeneric }

// HasAlpha reports whether name is a color encoding with an alpha channel.
func HasAlpha(name string) bool {
	info, err := Lookup(name)
	return err == nil && info.HasAlpha()
}
