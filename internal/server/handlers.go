package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/image-encodings-mcp/internal/encodings"
	"github.com/ironsheep/image-encodings-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "encoding_info", "raw_image_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Encoding Classification
	case "encoding_info":
		return s.handleEncodingInfo(args)
	case "encoding_list":
		return s.handleEncodingList(args)

	// Raw Image Information
	case "raw_image_load":
		return s.handleRawImageLoad(args)

	// Rendering
	case "raw_image_render":
		return s.handleRawImageRender(args)
	case "raw_image_crop":
		return s.handleRawImageCrop(args)

	// Pixel Operations
	case "raw_image_sample":
		return s.handleRawImageSample(args)
	case "raw_image_channel":
		return s.handleRawImageChannel(args)
	case "raw_image_histogram":
		return s.handleRawImageHistogram(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted from the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Encoding Classification Handlers ===

type encodingInfoArgs struct {
	Encoding string `json:"encoding"`
}

// EncodingInfoResult is the encoding_info payload.
type EncodingInfoResult struct {
	encodings.Info
	HasAlpha      bool `json:"has_alpha"`
	BytesPerPixel int  `json:"bytes_per_pixel"`
}

func newEncodingInfoResult(info encodings.Info) EncodingInfoResult {
	return EncodingInfoResult{
		Info:          info,
		HasAlpha:      info.HasAlpha(),
		BytesPerPixel: info.BytesPerPixel(),
	}
}

func (s *Server) handleEncodingInfo(args json.RawMessage) (interface{}, error) {
	var a encodingInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := encodings.Lookup(a.Encoding)
	if err != nil {
		return nil, err
	}
	return newEncodingInfoResult(info), nil
}

type encodingListArgs struct {
	Family string `json:"family"`
}

var errGenericNotListed = errors.New("generic encodings are parsed from <bits><U|S|F>C<channels> names and are not listed; use encoding_info")

// EncodingListResult is the encoding_list payload.
type EncodingListResult struct {
	Encodings []EncodingInfoResult `json:"encodings"`
	Count     int                  `json:"count"`
}

func (s *Server) handleEncodingList(args json.RawMessage) (interface{}, error) {
	var a encodingListArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if encodings.Family(a.Family) == encodings.FamilyGeneric {
		return nil, errGenericNotListed
	}
	if a.Family != "" && !validFamily(encodings.Family(a.Family)) {
		return nil, fmt.Errorf("unknown family: %s", a.Family)
	}

	out := EncodingListResult{Encodings: []EncodingInfoResult{}}
	for _, info := range encodings.Named() {
		if a.Family != "" && string(info.Family) != a.Family {
			continue
		}
		out.Encodings = append(out.Encodings, newEncodingInfoResult(info))
	}
	out.Count = len(out.Encodings)
	return out, nil
}

func validFamily(f encodings.Family) bool {
	for _, known := range encodings.Families() {
		if f == known {
			return true
		}
	}
	return false
}

// === Raw Image Handlers ===

type rawImageArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleRawImageLoad(args json.RawMessage) (interface{}, error) {
	var a rawImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type rawImageRenderArgs struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleRawImageRender(args json.RawMessage) (interface{}, error) {
	var a rawImageRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.render(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Render(img, a.Scale)
}

type rawImageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleRawImageCrop(args json.RawMessage) (interface{}, error) {
	var a rawImageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.render(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type rawImageSampleArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// RawSampleResult is the raw_image_sample payload. Color is omitted for
// encodings that cannot be rendered.
type RawSampleResult struct {
	*imaging.ChannelSample
	Color *imaging.ColorResult `json:"color,omitempty"`
}

func (s *Server) handleRawImageSample(args json.RawMessage) (interface{}, error) {
	var a rawImageSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	msg, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	sample, err := imaging.SampleChannels(msg, a.X, a.Y)
	if err != nil {
		return nil, err
	}

	result := RawSampleResult{ChannelSample: sample}
	if enc, _ := msg.Info(); imaging.Renderable(enc) {
		img, err := imaging.ToImage(msg)
		if err != nil {
			return nil, err
		}
		if result.Color, err = imaging.SampleColor(img, a.X, a.Y); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type rawImageChannelArgs struct {
	Path    string `json:"path"`
	Channel int    `json:"channel"`
}

func (s *Server) handleRawImageChannel(args json.RawMessage) (interface{}, error) {
	var a rawImageChannelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	msg, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ExtractChannel(msg, a.Channel)
}

func (s *Server) handleRawImageHistogram(args json.RawMessage) (interface{}, error) {
	var a rawImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.render(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Histogram(img), nil
}

// render loads a message through the cache and converts it to an image.
func (s *Server) render(path string) (image.Image, error) {
	msg, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return imaging.ToImage(msg)
}
