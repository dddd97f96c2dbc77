// Package imaging turns serialized sensor_msgs/Image buffers into something a
// client can look at.
//
// Messages are read from disk through ImageCache, classified by their encoding
// name, and either inspected channel by channel (SampleChannels,
// ExtractChannel) or rendered into a standard Go image.Image (ToImage) for
// color sampling, cropping, resizing and histograms.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Rendering
//
// ToImage maps encodings onto Go image types:
//   - mono, bayer and single-channel generic 8U: *image.Gray
//   - mono, bayer and single-channel generic 16U: *image.Gray16
//   - any other single-channel encoding (signed, float, 32/64-bit): min/max
//     normalized into *image.Gray16
//   - rgb/bgr with or without alpha, and generic 8U/16U with 3 or 4 channels:
//     *image.NRGBA or *image.NRGBA64
//   - yuv422 (UYVY) and yuv422_yuy2 (YUYV): *image.RGBA
//
// Bayer mosaics are shown as raw grayscale; no demosaicing is performed.
// Other encodings return ErrNotRenderable; their raw channels remain
// available through SampleChannels and ExtractChannel.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached messages are treated
// as read-only; every other function in this package is stateless.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Messages whose geometry does not match their encoding
//   - File I/O and decode errors during loading
package imaging
