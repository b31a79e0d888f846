package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func illuminantProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "HunterLab reference white: A, B, C, D50, D55, D65, D75, E, F2, F7 or F11. Default C",
		"default":     "C",
	}
}

func colorProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc + " as #rgb, #rrggbb or #rrggbbaa",
	}
}

func editProperties(props map[string]interface{}) map[string]interface{} {
	props["path"] = pathProperty()
	props["pixel_format"] = map[string]interface{}{
		"type":        "string",
		"enum":        formatNames,
		"description": "Buffer format the edit runs in; it decides quantization and the threshold scale. " +
				"16-bit sources keep full depth in rgba64 and rgbaf32, other sources are read as 8-bit. " +
				"The returned PNG is always 8-bit. Default rgba8",
		"default":     "rgba8",
	}
	props["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to also write the result to; the extension picks the format",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, decoded format and color depth.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGBA, CIE XYZ and HunterLab.",
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
					"illuminant": illuminantProperty(),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at multiple points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample, each with an optional label",
					},
					"illuminant": illuminantProperty(),
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "color_to_hunterlab",
			Description: "Convert an sRGB color to CIE XYZ and HunterLab.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color":      colorProperty("Color"),
					"illuminant": illuminantProperty(),
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "hunterlab_to_color",
			Description: "Convert a HunterLab value to sRGB. Reports whether the value is inside the sRGB gamut.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"l": map[string]interface{}{"type": "number", "description": "Lightness, 0-100"},
					"a": map[string]interface{}{"type": "number", "description": "Red (+) / green (-) axis"},
					"b": map[string]interface{}{"type": "number", "description": "Yellow (+) / blue (-) axis"},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Opacity 0-1. Default 1",
						"default":     1.0,
					},
					"illuminant": illuminantProperty(),
				},
				"required": []string{"l", "a", "b"},
			},
		},

		// Editing Operations
		{
			Name: "image_recolor",
			Description: "Replace colors near a source color with a target color, with a linear falloff " +
				"toward the threshold. Applies to the whole image, a rectangle, or a polygon. Returns a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": editProperties(map[string]interface{}{
					"source": colorProperty("Color to replace"),
					"target": colorProperty("Replacement color"),
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Match distance as a fraction (0-1) of the pixel format's full color distance",
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required":    []string{"x1", "y1", "x2", "y2"},
						"description": "Optional rectangle; (x2,y2) is exclusive",
					},
					"polygon": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":     "array",
							"items":    map[string]interface{}{"type": "number"},
							"minItems": 2,
							"maxItems": 2,
						},
						"description": "Optional closed polygon as [[x,y], ...], at least 3 points",
					},
					"antialias": map[string]interface{}{
						"type":        "boolean",
						"description": "Blend polygon edges by coverage. Default true",
						"default":     true,
					},
				}),
				"required": []string{"path", "source", "target", "threshold"},
			},
		},
		{
			Name: "image_dither",
			Description: "Reduce an image to two colors (binary) or to a palette, diffusing the quantization " +
				"error with a caller-supplied weight matrix. Returns a base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": editProperties(map[string]interface{}{
					"mode": map[string]interface{}{
						"type":    "string",
						"enum":    []string{"binary", "palette"},
						"default": "binary",
					},
					"weights": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "number"},
						},
						"description": "Diffusion coefficients, row 0 being the current row. The current pixel is just left " +
							"of the first non-zero entry of row 0. Floyd-Steinberg is [[0,0,7],[3,5,1]] with divisor 16",
					},
					"divisor": map[string]interface{}{
						"type":        "number",
						"description": "Positive value every coefficient is divided by",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Binary mode: luminance (0-1) at or above which a pixel becomes upper. Default 0.5",
						"default":     0.5,
					},
					"lower":   colorProperty("Binary mode dark color, default #000000."),
					"upper":   colorProperty("Binary mode light color, default #ffffff."),
					"palette": map[string]interface{}{"type": "array", "items": colorProperty("Palette entry")},
				}),
				"required": []string{"path", "weights", "divisor"},
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
