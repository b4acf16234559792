package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/ironsheep/content-box-mcp/internal/contentbox"
	"github.com/ironsheep/content-box-mcp/internal/geometry"
	"github.com/ironsheep/content-box-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_content_box").
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
// A search that ran out of time or was interrupted is reported with the
// message "Tool execution cancelled" so that clients can retry it; a page
// without content is not an error.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if errors.Is(err, contentbox.ErrCancelled) {
		s.log.Warn("tool cancelled", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution cancelled", err.Error())
	}
	if err != nil {
		s.log.Warn("tool failed", "tool", params.Name, "error", err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging or contentbox function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_binarize":
		return s.handleImageBinarize(args)

	// Content Box
	case "image_content_box":
		return s.handleImageContentBox(ctx, args)
	case "image_crop_content":
		return s.handleImageCropContent(ctx, args)
	case "image_content_overlay":
		return s.handleImageContentOverlay(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageBinarizeArgs struct {
	Path      string `json:"path"`
	Threshold int    `json:"threshold"`
}

type binarizeResult struct {
	*imaging.EncodedImage
	Threshold uint8 `json:"threshold"`
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a imageBinarizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	level, err := referenceThreshold(img, a.Threshold)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.Encode(imaging.Binarized(img, level))
	if err != nil {
		return nil, err
	}
	return &binarizeResult{EncodedImage: enc, Threshold: level}, nil
}

// === Content Box Handlers ===

// contentBoxArgs are the search parameters shared by the content box tools.
type contentBoxArgs struct {
	Path string `json:"path"`

	// DPI is the scan density; 0 selects the configured default.
	DPI float64 `json:"dpi"`

	// Threshold is the reference binarization level; 0 selects Otsu's level.
	Threshold int `json:"threshold"`

	// Rotation in degrees, clockwise.
	Rotation float64 `json:"rotation"`
}

// pixelBox is a half-open pixel rectangle.
type pixelBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func toPixelBox(r image.Rectangle) pixelBox {
	return pixelBox{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

type contentBoxResult struct {
	Found            bool     `json:"found"`
	X1               int      `json:"x1"`
	Y1               int      `json:"y1"`
	X2               int      `json:"x2"`
	Y2               int      `json:"y2"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Threshold        uint8    `json:"threshold"`
	LighterThreshold uint8    `json:"lighter_threshold"`
	WorkingBox       pixelBox `json:"working_box"`
	WorkingDPI       float64  `json:"working_dpi"`
}

// search is one completed content box search.
type search struct {
	img       image.Image
	threshold uint8
	result    contentbox.Result
}

// box returns the content box in whole source pixels, clipped to the image.
func (sr *search) box() image.Rectangle {
	if sr.result.Empty {
		return image.Rectangle{}
	}
	return imaging.ContentRect(sr.img, sr.result.Box, 0)
}

// referenceThreshold validates a client supplied level, estimating one with
// Otsu's method when it is zero.
func referenceThreshold(img image.Image, level int) (uint8, error) {
	switch {
	case level < 0 || level > 255:
		return 0, fmt.Errorf("threshold %d outside 0..255", level)
	case level == 0:
		return imaging.OtsuThreshold(img), nil
	default:
		return uint8(level), nil
	}
}

// findContentBox runs the content box search under the configured deadline.
// Diagnostic images go to the configured debug directory, if any.
func (s *Server) findContentBox(ctx context.Context, a contentBoxArgs) (*search, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	s.log.Debug("image loaded", "path", a.Path, "cached", s.cache.Len())
	if a.DPI < 0 {
		return nil, fmt.Errorf("dpi must be positive, got %g", a.DPI)
	}
	if a.DPI == 0 {
		a.DPI = s.cfg.DefaultDPI
	}
	threshold, err := referenceThreshold(img, a.Threshold)
	if err != nil {
		return nil, err
	}

	in := contentbox.Input{
		Image:     img,
		Transform: geometry.NewImageTransform(img.Bounds(), geometry.DPI{X: a.DPI, Y: a.DPI}).Rotated(a.Rotation),
		Threshold: threshold,
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
	defer cancel()

	var res contentbox.Result
	if s.cfg.DebugDir != "" {
		sink, sinkErr := contentbox.NewDirSink(s.cfg.DebugDir, debugPrefix(a.Path), s.log)
		if sinkErr != nil {
			return nil, sinkErr
		}
		res, err = s.finder.FindWithSink(ctx, in, sink)
	} else {
		res, err = s.finder.Find(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("content box", "path", a.Path, "empty", res.Empty, "box", res.Box.Outer(), "threshold", threshold)
	return &search{img: img, threshold: threshold, result: res}, nil
}

// debugPrefix names diagnostic files after the scanned page.
func debugPrefix(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_"
}

func (s *Server) handleImageContentBox(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a contentBoxArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sr, err := s.findContentBox(ctx, a)
	if err != nil {
		return nil, err
	}

	out := &contentBoxResult{
		Found:            !sr.result.Empty,
		Threshold:        sr.threshold,
		LighterThreshold: sr.result.LighterThreshold,
		WorkingDPI:       s.finder.Options().TargetDPI,
	}
	if sr.result.Empty {
		return out, nil
	}

	// With a rotation the box lives in the rotated page, which may be
	// larger than the source, so it is not clipped to the image.
	box := sr.result.Box.Outer()
	out.X1, out.Y1, out.X2, out.Y2 = box.Min.X, box.Min.Y, box.Max.X, box.Max.Y
	out.Width, out.Height = box.Dx(), box.Dy()
	out.WorkingBox = toPixelBox(sr.result.WorkingBox)
	return out, nil
}

type imageCropContentArgs struct {
	Path      string  `json:"path"`
	DPI       float64 `json:"dpi"`
	Threshold int     `json:"threshold"`
	Margin    int     `json:"margin"`
	Scale     float64 `json:"scale"`
}

type cropContentResult struct {
	*imaging.EncodedImage
	Box pixelBox `json:"box"`
}

func (s *Server) handleImageCropContent(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageCropContentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	sr, err := s.findContentBox(ctx, contentBoxArgs{Path: a.Path, DPI: a.DPI, Threshold: a.Threshold})
	if err != nil {
		return nil, err
	}
	if sr.result.Empty {
		return nil, fmt.Errorf("no content found in %s", a.Path)
	}

	enc, err := imaging.CropToBox(sr.img, sr.result.Box, a.Margin, a.Scale)
	if err != nil {
		return nil, err
	}
	return &cropContentResult{EncodedImage: enc, Box: toPixelBox(sr.box())}, nil
}

type imageContentOverlayArgs struct {
	Path            string  `json:"path"`
	DPI             float64 `json:"dpi"`
	Threshold       int     `json:"threshold"`
	Color           string  `json:"color"`
	Thickness       int     `json:"thickness"`
	DimOutside      *bool   `json:"dim_outside"`
	ShowCoordinates bool    `json:"show_coordinates"`
}

type contentOverlayResult struct {
	*imaging.EncodedImage
	Found bool     `json:"found"`
	Box   pixelBox `json:"box"`
}

func (s *Server) handleImageContentOverlay(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageContentOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Thickness == 0 {
		a.Thickness = 3
	}
	dim := a.DimOutside == nil || *a.DimOutside

	sr, err := s.findContentBox(ctx, contentBoxArgs{Path: a.Path, DPI: a.DPI, Threshold: a.Threshold})
	if err != nil {
		return nil, err
	}

	box := sr.box()
	overlay, err := imaging.ContentOverlay(sr.img, box, imaging.OverlayOptions{
		Color:           a.Color,
		Thickness:       a.Thickness,
		DimOutside:      dim,
		ShowCoordinates: a.ShowCoordinates,
	})
	if err != nil {
		return nil, err
	}
	enc, err := imaging.Encode(overlay)
	if err != nil {
		return nil, err
	}
	return &contentOverlayResult{EncodedImage: enc, Found: !sr.result.Empty, Box: toPixelBox(box)}, nil
}
