package imaging

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

// ErrNotRenderable is returned by ToImage for encodings that have no
// meaningful display form, such as 2-channel or 10-channel generic buffers.
var ErrNotRenderable = errors.New("encoding cannot be rendered as an image")

// Renderable reports whether ToImage supports an encoding.
func Renderable(info encodings.Info) bool {
	switch {
	case info.Family == encodings.FamilyYUV:
		return info.Order == "uyvy" || info.Order == "yuyv"
	case info.Channels == 1:
		return true
	case info.Channels == 3 || info.Channels == 4:
		return info.Kind == encodings.Unsigned && info.BitDepth <= 16
	default:
		return false
	}
}

// pixelReader reads raw channel samples from a validated message.
type pixelReader struct {
	msg   *rosmsg.Image
	info  encodings.Info
	order binary.ByteOrder
	size  int // bytes per channel
}

func newPixelReader(msg *rosmsg.Image) (*pixelReader, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	info, _ := msg.Info()

	var order binary.ByteOrder = binary.LittleEndian
	if msg.IsBigEndian {
		order = binary.BigEndian
	}
	return &pixelReader{msg: msg, info: info, order: order, size: info.BitDepth / 8}, nil
}

func (p *pixelReader) width() int  { return int(p.msg.Width) }
func (p *pixelReader) height() int { return int(p.msg.Height) }

func (p *pixelReader) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width() && y < p.height()
}

func (p *pixelReader) offset(x, y, c int) int {
	return y*int(p.msg.Step) + (x*p.info.Channels+c)*p.size
}

// raw returns the unsigned bit pattern of a sample.
func (p *pixelReader) raw(x, y, c int) uint64 {
	b := p.msg.Data[p.offset(x, y, c):]
	switch p.size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(p.order.Uint16(b))
	case 4:
		return uint64(p.order.Uint32(b))
	default:
		return p.order.Uint64(b)
	}
}

// value returns a sample interpreted according to the encoding's kind.
func (p *pixelReader) value(x, y, c int) float64 {
	r := p.raw(x, y, c)
	switch p.info.Kind {
	case encodings.Signed:
		switch p.size {
		case 1:
			return float64(int8(r))
		case 2:
			return float64(int16(r))
		case 4:
			return float64(int32(r))
		default:
			return float64(int64(r))
		}
	case encodings.Float:
		switch p.size {
		case 1:
			// There is no 8-bit float; treat the byte as unsigned.
			return float64(r)
		case 2:
			return float64(halfToFloat32(uint16(r)))
		case 4:
			return float64(math.Float32frombits(uint32(r)))
		default:
			return math.Float64frombits(r)
		}
	default:
		return float64(r)
	}
}

// halfToFloat32 converts an IEEE 754 binary16 value.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize the fraction.
		e := uint32(127 - 15 + 1)
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		return math.Float32frombits(sign | e<<23 | frac<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | frac<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | frac<<13)
	}
}

// ToImage converts a message into a standard Go image.
//
// The message is validated first. See the package documentation for the
// mapping from encodings to image types.
//
// # Errors
//
//   - Returns the validation error for malformed messages
//   - Returns ErrNotRenderable for unsupported encodings
func ToImage(msg *rosmsg.Image) (image.Image, error) {
	p, err := newPixelReader(msg)
	if err != nil {
		return nil, err
	}
	if !Renderable(p.info) {
		return nil, fmt.Errorf("%w: %s", ErrNotRenderable, msg.Encoding)
	}

	switch {
	case p.info.Family == encodings.FamilyYUV:
		return p.yuv422(), nil
	case p.info.Channels == 1:
		return p.gray(0), nil
	default:
		return p.color(), nil
	}
}

// gray renders one channel as a grayscale image.
func (p *pixelReader) gray(c int) image.Image {
	w, h := p.width(), p.height()
	rect := image.Rect(0, 0, w, h)

	if p.info.Kind == encodings.Unsigned && p.size == 1 {
		img := image.NewGray(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Pix[y*img.Stride+x] = uint8(p.raw(x, y, c))
			}
		}
		return img
	}

	img := image.NewGray16(rect)
	if p.info.Kind == encodings.Unsigned && p.size == 2 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray16(x, y, color.Gray16{Y: uint16(p.raw(x, y, c))})
			}
		}
		return img
	}

	lo, hi := p.valueRange(c)
	span := hi - lo
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := p.value(x, y, c)
			var g uint16
			if span > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
				g = uint16(math.Round((v - lo) / span * 65535))
			}
			img.SetGray16(x, y, color.Gray16{Y: g})
		}
	}
	return img
}

// valueRange returns the finite minimum and maximum of one channel.
func (p *pixelReader) valueRange(c int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for y := 0; y < p.height(); y++ {
		for x := 0; x < p.width(); x++ {
			v := p.value(x, y, c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// channelOrder returns the channel order, defaulting generic encodings to
// rgb or rgba.
func (p *pixelReader) channelOrder() string {
	if p.info.Order != "" {
		return p.info.Order
	}
	if p.info.Channels == 4 {
		return "rgba"
	}
	return "rgb"
}

func (p *pixelReader) color() image.Image {
	w, h := p.width(), p.height()
	rect := image.Rect(0, 0, w, h)
	order := p.channelOrder()
	ri, gi, bi, ai := strings.IndexByte(order, 'r'), strings.IndexByte(order, 'g'),
		strings.IndexByte(order, 'b'), strings.IndexByte(order, 'a')

	if p.size == 1 {
		img := image.NewNRGBA(rect)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				a := uint8(0xff)
				if ai >= 0 {
					a = uint8(p.raw(x, y, ai))
				}
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8(p.raw(x, y, ri)),
					G: uint8(p.raw(x, y, gi)),
					B: uint8(p.raw(x, y, bi)),
					A: a,
				})
			}
		}
		return img
	}

	img := image.NewNRGBA64(rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint16(0xffff)
			if ai >= 0 {
				a = uint16(p.raw(x, y, ai))
			}
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(p.raw(x, y, ri)),
				G: uint16(p.raw(x, y, gi)),
				B: uint16(p.raw(x, y, bi)),
				A: a,
			})
		}
	}
	return img
}

// yuv422 decodes packed 4:2:2 data. Each pair of pixels shares one U and one
// V sample; a trailing unpaired pixel uses neutral chroma.
func (p *pixelReader) yuv422() image.Image {
	w, h := p.width(), p.height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	// Byte positions of Y0, U, Y1, V within a 4-byte macropixel.
	y0, u, y1, v := 1, 0, 3, 2
	if p.info.Order == "yuyv" {
		y0, u, y1, v = 0, 1, 2, 3
	}

	for y := 0; y < h; y++ {
		row := p.msg.Data[y*int(p.msg.Step):]
		for x := 0; x < w; x++ {
			base := (x / 2) * 4
			cb, cr := uint8(128), uint8(128)
			var luma uint8
			if base+4 <= 2*w {
				cb, cr = row[base+u], row[base+v]
				if x%2 == 0 {
					luma = row[base+y0]
				} else {
					luma = row[base+y1]
				}
			} else {
				luma = row[base+y0]
			}
			r, g, b := color.YCbCrToRGB(luma, cb, cr)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img
}
