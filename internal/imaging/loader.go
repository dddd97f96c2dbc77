package imaging

import (
	"fmt"
	"os"
	"sync"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
	"github.com/ironsheep/image-encodings-mcp/internal/rosmsg"
)

// ImageCache provides thread-safe caching of decoded image messages to avoid
// redundant disk reads.
//
// The cache stores validated *rosmsg.Image values keyed by their file path.
// Once a message is loaded, subsequent Load() calls for the same path return
// the cached copy without disk I/O. Callers must not modify returned messages.
//
// # Memory Management
//
// Cached messages remain in memory until explicitly removed via Evict() or
// Clear(). The size of any single message is bounded by the limit passed to
// NewImageCache.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(rosmsg.DefaultMaxMessageBytes)
//	msg, err := cache.Load("/path/to/frame.msg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img, err := imaging.ToImage(msg)
type ImageCache struct {
	mu       sync.RWMutex
	maxBytes int
	images   map[string]*rosmsg.Image
}

// NewImageCache creates an empty cache. maxBytes limits the serialized size
// of each message; non-positive values select rosmsg.DefaultMaxMessageBytes.
func NewImageCache(maxBytes int) *ImageCache {
	if maxBytes <= 0 {
		maxBytes = rosmsg.DefaultMaxMessageBytes
	}
	return &ImageCache{
		maxBytes: maxBytes,
		images:   make(map[string]*rosmsg.Image),
	}
}

// Load retrieves a message from the cache or reads it from disk if not cached.
//
// The file must hold one length-prefixed sensor_msgs/Image in ROS1 wire
// format. The message is validated before it is cached, so every message
// returned by Load has a known encoding and enough data for its geometry.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the message is truncated, oversized or malformed
//   - Returns error if the encoding is unknown or the geometry is inconsistent
func (c *ImageCache) Load(path string) (*rosmsg.Image, error) {
	c.mu.RLock()
	if msg, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return msg, nil
	}
	c.mu.RUnlock()

	msg, err := rosmsg.ReadFile(path, rosmsg.WithMaxMessageBytes(c.maxBytes))
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	c.mu.Lock()
	c.images[path] = msg
	c.mu.Unlock()

	return msg, nil
}

// Clear removes all messages from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*rosmsg.Image)
	c.mu.Unlock()
}

// Evict removes a specific message from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image message.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Encoding is the sensor_msgs/Image encoding name.
	Encoding string `json:"encoding"`

	// Channels is the number of channels per pixel.
	Channels int `json:"channels"`

	// BitDepth is the number of bits per channel.
	BitDepth int `json:"bit_depth"`

	// Kind is the channel element type: "U", "S" or "F".
	Kind encodings.Kind `json:"kind"`

	// Family is the encoding family (color, mono, bayer, yuv, generic).
	Family encodings.Family `json:"family"`

	// HasAlpha indicates whether the encoding has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Renderable reports whether ToImage can convert this message.
	Renderable bool `json:"renderable"`

	// Step is the row length in bytes.
	Step int `json:"step"`

	// IsBigEndian is the byte order of multi-byte samples.
	IsBigEndian bool `json:"is_bigendian"`

	// FrameID, Seq and Stamp come from the message header.
	FrameID string      `json:"frame_id"`
	Seq     uint32      `json:"seq"`
	Stamp   rosmsg.Time `json:"stamp"`

	// DataBytes is the length of the pixel buffer.
	DataBytes int `json:"data_bytes"`

	// FileSizeBytes is the size of the message file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads a message and describes it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the serialized message.
//
// Returns:
//   - *ImageInfo: Metadata about the message and its encoding.
//   - error: Non-nil if the message cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	msg, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := Describe(msg)
	info.FileSizeBytes = stat.Size()
	return info, nil
}

// Describe returns the metadata of a validated message. FileSizeBytes is
// left zero.
func Describe(msg *rosmsg.Image) *ImageInfo {
	// Validated messages always have a known encoding.
	enc, _ := msg.Info()

	return &ImageInfo{
		Width:       int(msg.Width),
		Height:      int(msg.Height),
		Encoding:    msg.Encoding,
		Channels:    enc.Channels,
		BitDepth:    enc.BitDepth,
		Kind:        enc.Kind,
		Family:      enc.Family,
		HasAlpha:    enc.HasAlpha(),
		Renderable:  Renderable(enc),
		Step:        int(msg.Step),
		IsBigEndian: msg.IsBigEndian,
		FrameID:     msg.Header.FrameID,
		Seq:         msg.Header.Seq,
		Stamp:       msg.Header.Stamp,
		DataBytes:   len(msg.Data),
	}
}
