// Package rosmsg reads and writes sensor_msgs/Image messages in the ROS1
// serialization format.
//
// All integers are little-endian. Strings and uint8[] fields are prefixed
// with their u32 length, and a complete message is prefixed with its u32
// byte length, exactly as published on a TCPROS connection or stored in a
// message dump file.
package rosmsg

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
)

var (
	// ErrTruncated is returned when the input ends before the message does.
	ErrTruncated = errors.New("truncated message")

	// ErrTooLarge is returned when a length prefix exceeds the decode limit.
	ErrTooLarge = errors.New("message too large")

	// ErrInvalidImage is returned by Validate for inconsistent image geometry.
	ErrInvalidImage = errors.New("invalid image")
)

// Time is a ROS timestamp.
type Time struct {
	Sec  uint32 `json:"sec"`
	Nsec uint32 `json:"nsec"`
}

// Header is std_msgs/Header.
type Header struct {
	Seq     uint32 `json:"seq"`
	Stamp   Time   `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// Image is sensor_msgs/Image.
type Image struct {
	Header      Header
	Height      uint32
	Width       uint32
	Encoding    string
	IsBigEndian bool
	// Step is the length of a row in bytes.
	Step uint32
	Data []byte
}

// Validate checks that the encoding is known and that Step and Data are
// large enough for Width x Height pixels of that encoding.
func (m *Image) Validate() error {
	info, err := encodings.Lookup(m.Encoding)
	if err != nil {
		return err
	}

	// Step is a u32, so no valid row holds a pixel wider than that.
	pixelBytes := uint64(info.BitDepth / 8)
	if uint64(info.Channels) > math.MaxUint32/pixelBytes {
		return fmt.Errorf("%w: %d channels of %d bits do not fit a row",
			ErrInvalidImage, info.Channels, info.BitDepth)
	}
	pixelBytes *= uint64(info.Channels)

	rowBytes := uint64(m.Width) * pixelBytes
	if uint64(m.Step) < rowBytes {
		return fmt.Errorf("%w: step %d shorter than %d-pixel row of %s (%d bytes)",
			ErrInvalidImage, m.Step, m.Width, m.Encoding, rowBytes)
	}

	need := uint64(m.Step) * uint64(m.Height)
	if uint64(len(m.Data)) < need {
		return fmt.Errorf("%w: data has %d bytes, need %d (step %d x height %d)",
			ErrInvalidImage, len(m.Data), need, m.Step, m.Height)
	}
	return nil
}

// Info returns the classification of the image's encoding.
func (m *Image) Info() (encodings.Info, error) {
	return encodings.Lookup(m.Encoding)
}
