package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load a page scan and return its dimensions, format and color depth. The decoded page is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_binarize",
			Description: "Return the black and white rendering of a page that the content box search starts from. Use this to check whether the binarization level separates ink from paper.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level (1-255) below which pixels are ink. Default 0 estimates it with Otsu's method",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Content Box
		{
			Name:        "image_content_box",
			Description: "Find the content box of a scanned page: the rectangle holding the printed matter, excluding binding shadows, page-edge noise and margins. Returns found=false for a page without content.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": contentBoxProperties(map[string]interface{}{
					"rotation": map[string]interface{}{
						"type":        "number",
						"description": "Clockwise rotation in degrees applied to the page before the search. The box is reported in the rotated page. Default 0",
						"default":     0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop_content",
			Description: "Detect the content box of a scanned page and return the page cropped to it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": contentBoxProperties(map[string]interface{}{
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Extra pixels kept around the content box. Default 0",
						"default":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the crop. Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_content_overlay",
			Description: "Detect the content box of a scanned page and return the page with the box outlined, as base64-encoded PNG. Use this to review what the search kept and what it discarded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": contentBoxProperties(map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Outline color as hex (default #FF0000)",
						"default":     "#FF0000",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Outline thickness in pixels (default 3)",
						"default":     3,
					},
					"dim_outside": map[string]interface{}{
						"type":        "boolean",
						"description": "Wash out everything outside the box",
						"default":     true,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Label the box corners with their coordinates",
						"default":     false,
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// contentBoxProperties returns the arguments shared by the content box tools
// merged with the tool specific ones in extra.
func contentBoxProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"dpi": map[string]interface{}{
			"type":        "number",
			"description": "Scan resolution in dots per inch. Default from CONTENT_BOX_DEFAULT_DPI (300)",
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Gray level (1-255) below which pixels are ink. Default 0 estimates it with Otsu's method",
			"default":     0,
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
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
