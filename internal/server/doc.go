// Package server implements the MCP (Model Context Protocol) server for ROS
// image encodings.
//
// The server exposes the encoding classifier and a raw sensor_msgs/Image
// viewer through JSON-RPC 2.0, so an MCP client can ask what "16UC3" means
// and then look at a frame stored in that encoding.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Encoding Classification:
//   - encoding_info: Channel count, bit depth and family of one encoding
//   - encoding_list: Named encodings, optionally by family
//
// Raw Image Information:
//   - raw_image_load: Load a serialized image and describe it
//
// Rendering:
//   - raw_image_render: Render as PNG
//   - raw_image_crop: Render a rectangular region as PNG
//
// Pixel Operations:
//   - raw_image_sample: Raw channel values and display color at a pixel
//   - raw_image_channel: One channel as grayscale PNG
//   - raw_image_histogram: RGBA histograms of the rendered image
//
// # Image Caching
//
// Decoded messages are cached by path for the lifetime of the server
// process. The decode size limit comes from config.Config.MaxMessageBytes.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(config.Load())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
