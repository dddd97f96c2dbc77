package rosmsg

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// DefaultMaxMessageBytes bounds the size of a single decoded message.
const DefaultMaxMessageBytes = 256 << 20

type decodeOptions struct {
	maxBytes uint32
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// WithMaxMessageBytes limits the message length accepted by Decode.
// Non-positive values keep the default.
func WithMaxMessageBytes(n int) DecodeOption {
	return func(o *decodeOptions) {
		if n > 0 && uint64(n) <= uint64(^uint32(0)) {
			o.maxBytes = uint32(n)
		}
	}
}

// Decode reads one length-prefixed sensor_msgs/Image from r.
//
// # Errors
//
//   - ErrTooLarge if the length prefix exceeds the configured limit
//   - ErrTruncated if r ends before the message is complete
//   - A descriptive error for malformed fields or trailing bytes
func Decode(r io.Reader, opts ...DecodeOption) (*Image, error) {
	o := decodeOptions{maxBytes: DefaultMaxMessageBytes}
	for _, opt := range opts {
		opt(&o)
	}

	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, readErr("message length", err)
	}
	length := binary.LittleEndian.Uint32(prefix[:])
	if length > o.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, length, o.maxBytes)
	}

	// The buffer grows with the bytes actually read, not the declared length.
	var body bytes.Buffer
	if _, err := io.CopyN(&body, r, int64(length)); err != nil {
		return nil, readErr("message body", err)
	}

	d := &decoder{buf: body.Bytes()}
	img := &Image{}
	img.Header.Seq = d.u32("header.seq")
	img.Header.Stamp.Sec = d.u32("header.stamp.sec")
	img.Header.Stamp.Nsec = d.u32("header.stamp.nsec")
	img.Header.FrameID = d.str("header.frame_id")
	img.Height = d.u32("height")
	img.Width = d.u32("width")
	img.Encoding = d.str("encoding")
	img.IsBigEndian = d.u8("is_bigendian") != 0
	img.Step = d.u32("step")
	img.Data = d.bytes("data")

	if d.err != nil {
		return nil, d.err
	}
	if rest := len(d.buf) - d.off; rest != 0 {
		return nil, fmt.Errorf("failed to decode image: %d trailing bytes", rest)
	}
	return img, nil
}

func readErr(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrTruncated, field)
	}
	return fmt.Errorf("failed to read %s: %w", field, err)
}

// decoder walks a message body. The first failure sticks; later reads
// return zero values.
type decoder struct {
	buf []byte
	off int
	err error
}

func (d *decoder) take(field string, n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || len(d.buf)-d.off < n {
		d.err = fmt.Errorf("%w: reading %s", ErrTruncated, field)
		return nil
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

func (d *decoder) u8(field string) uint8 {
	b := d.take(field, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *decoder) u32(field string) uint32 {
	b := d.take(field, 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *decoder) bytes(field string) []byte {
	n := d.u32(field + " length")
	if d.err != nil {
		return nil
	}
	if uint64(n) > uint64(len(d.buf)-d.off) {
		d.err = fmt.Errorf("%w: %s declares %d bytes, %d remain", ErrTruncated, field, n, len(d.buf)-d.off)
		return nil
	}
	b := d.take(field, int(n))
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func (d *decoder) str(field string) string {
	b := d.bytes(field)
	if d.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		d.err = fmt.Errorf("failed to decode %s: invalid UTF-8", field)
		return ""
	}
	return string(b)
}

// Encode writes img to w in length-prefixed form.
func Encode(w io.Writer, img *Image) error {
	size := 4 + 4 + 4 + 4 + len(img.Header.FrameID) +
		4 + 4 + 4 + len(img.Encoding) + 1 + 4 + 4 + len(img.Data)
	if uint64(size) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d bytes does not fit a u32 length", ErrTooLarge, size)
	}

	buf := make([]byte, 0, 4+size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = binary.LittleEndian.AppendUint32(buf, img.Header.Seq)
	buf = binary.LittleEndian.AppendUint32(buf, img.Header.Stamp.Sec)
	buf = binary.LittleEndian.AppendUint32(buf, img.Header.Stamp.Nsec)
	buf = appendBytes(buf, []byte(img.Header.FrameID))
	buf = binary.LittleEndian.AppendUint32(buf, img.Height)
	buf = binary.LittleEndian.AppendUint32(buf, img.Width)
	buf = appendBytes(buf, []byte(img.Encoding))
	if img.IsBigEndian {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = binary.LittleEndian.AppendUint32(buf, img.Step)
	buf = appendBytes(buf, img.Data)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

func appendBytes(buf, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

// ReadFile decodes the message stored at path.
func ReadFile(path string, opts ...DecodeOption) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open message: %w", err)
	}
	defer f.Close()

	img, err := Decode(bufio.NewReader(f), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// WriteFile encodes img to path, replacing any existing file.
func WriteFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create message file: %w", err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
