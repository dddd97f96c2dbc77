package server

import (
	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a serialized sensor_msgs/Image file (ROS1 wire format)",
	}
}

func scaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
		"default":     1.0,
	}
}

// familyNames lists the families encoding_list can filter by. Generic
// encodings are parsed from their names and have no table entries.
func familyNames() []string {
	var names []string
	for _, f := range encodings.Families() {
		if f != encodings.FamilyGeneric {
			names = append(names, string(f))
		}
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Encoding Classification
		{
			Name:        "encoding_info",
			Description: "Classify an image encoding name such as mono8, bgra16, bayer_rggb8 or 16UC3: channel count, bit depth per channel, element type, family and channel order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"encoding": map[string]interface{}{
						"type":        "string",
						"description": "Encoding name, either named (rgb8) or generic <bits><U|S|F>C<channels> (8UC3, 32FC)",
					},
				},
				"required": []string{"encoding"},
			},
		},
		{
			Name:        "encoding_list",
			Description: "List the named image encodings, optionally filtered by family. Generic <bits><type>C<channels> encodings are always accepted and not listed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"family": map[string]interface{}{
						"type":        "string",
						"enum":        familyNames(),
						"description": "Only list encodings of this family",
					},
				},
			},
		},

		// Raw Image Information
		{
			Name:        "raw_image_load",
			Description: "Load a serialized sensor_msgs/Image and return its geometry, encoding classification and header. Validates that step and data match the encoding.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Rendering
		{
			Name:        "raw_image_render",
			Description: "Render a raw image message as base64-encoded PNG. Float and signed single-channel images are min/max normalized.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":  pathProperty(),
					"scale": scaleProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raw_image_crop",
			Description: "Crop a rectangular region from a rendered raw image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": scaleProperty(),
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Pixel Operations
		{
			Name:        "raw_image_sample",
			Description: "Read the raw value of every channel at a pixel. Also returns the display color when the encoding can be rendered.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "raw_image_channel",
			Description: "Extract one channel of a raw image as a grayscale base64-encoded PNG. Works for any channel count, e.g. channel 7 of 8UC10.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"channel": map[string]interface{}{
						"type":        "integer",
						"description": "0-based channel index in storage order (index 0 of bgr8 is blue)",
					},
				},
				"required": []string{"path", "channel"},
			},
		},
		{
			Name:        "raw_image_histogram",
			Description: "Compute 256-bin red, green, blue and alpha histograms of the rendered image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
