// Package encodings classifies ROS sensor_msgs/Image encoding names.
//
// An encoding name describes how the pixels of an image buffer are laid out.
// Two forms are recognized:
//
//   - Named encodings such as "mono8", "rgb8", "bgra16" or "bayer_rggb8".
//     These come from a static table embedded in the package.
//   - Generic encodings of the form <bits><type>C<channels>, for example
//     "8UC3", "16UC", "32SC10" or "64FC3". Bits is one of 8, 16, 32 or 64,
//     type is U (unsigned), S (signed) or F (float), and a missing channel
//     suffix means a single channel.
//
// # Usage
//
//	n, err := encodings.NumChannels("16UC3") // 3
//	d, err := encodings.BitDepth("16UC3")    // 16
//
// # Errors
//
// Names that match neither form return an error wrapping ErrUnknownEncoding:
//
//	if _, err := encodings.NumChannels("jpeg"); errors.Is(err, encodings.ErrUnknownEncoding) {
//	    // ...
//	}
//
// The predicates (IsColor, IsMono, IsBayer, HasAlpha, IsGeneric) report false
// for unknown names instead of returning an error.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use. The named table is
// decoded once at package initialization and never modified afterwards.
package encodings
