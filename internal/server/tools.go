package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// boxSchema describes one candidate box in pixel coordinates. Shared by
// every tool that accepts inline detections.
func boxSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
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
			"label": map[string]interface{}{
				"type":        "string",
				"description": "Optional detector class label",
			},
			"confidence": map[string]interface{}{
				"type":        "number",
				"description": "Optional detector confidence",
			},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Matching
		{
			Name:        "logo_match",
			Description: "Match logo images against candidate regions of a base image. Estimates a per-logo similarity cutoff from the background feature bank, then returns the candidate indices and rounded cosine scores each logo matched. Optionally returns an annotated PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the base image",
					},
					"logo_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the logo images to search for",
					},
					"boxes": map[string]interface{}{
						"type":        "array",
						"items":       boxSchema(),
						"description": "Candidate boxes in base image pixel coordinates. Takes precedence over detections_path",
					},
					"detections_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a JSON file holding an array of candidate boxes",
					},
					"bank_path": map[string]interface{}{
						"type":        "string",
						"description": "Background feature bank file. Defaults to LOGO_MCP_BANK_PATH",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Cutoff threshold within (0, 1]. Defaults to LOGO_MCP_THRESHOLD",
						"default":     0.95,
					},
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the base image with matched boxes drawn, base64 PNG",
						"default":     false,
					},
				},
				"required": []string{"image_path", "logo_paths"},
			},
		},
		{
			Name:        "logo_cutoffs",
			Description: "Estimate per-logo similarity cutoffs against the background feature bank without matching. Useful to inspect how separable each logo is from the background population.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"logo_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the logo images",
					},
					"bank_path": map[string]interface{}{
						"type":        "string",
						"description": "Background feature bank file. Defaults to LOGO_MCP_BANK_PATH",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Cutoff threshold within (0, 1]. Defaults to LOGO_MCP_THRESHOLD",
						"default":     0.95,
					},
				},
				"required": []string{"logo_paths"},
			},
		},

		// Feature Extraction
		{
			Name:        "logo_embed",
			Description: "Run the feature extractor over images and report the embedding count and dimensionality. A quick way to verify the model produces features for given inputs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the images to embed",
					},
				},
				"required": []string{"image_paths"},
			},
		},

		// Feature Banks
		{
			Name:        "bank_build",
			Description: "Extract features for a set of background images and write them as a feature bank file for cutoff estimation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory of background images (png/jpg/jpeg/gif). Used when image_paths is absent",
					},
					"image_paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Explicit background image paths. Takes precedence over image_dir",
					},
					"out_path": map[string]interface{}{
						"type":        "string",
						"description": "Output bank file path",
					},
				},
				"required": []string{"out_path"},
			},
		},
		{
			Name:        "bank_info",
			Description: "Report the dimensionality, row count, and file size of a feature bank.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Bank file path. Defaults to LOGO_MCP_BANK_PATH",
					},
				},
			},
		},

		// Text Readout
		{
			Name:        "match_read_text",
			Description: "Read text from candidate regions of the base image with OCR, typically the regions a logo matched. Requires a build with Tesseract available.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the base image",
					},
					"boxes": map[string]interface{}{
						"type":        "array",
						"items":       boxSchema(),
						"description": "Candidate boxes in base image pixel coordinates. Takes precedence over detections_path",
					},
					"detections_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to a JSON file holding an array of candidate boxes",
					},
					"indices": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Candidate indices to read, e.g. a match set. Empty reads every box",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Defaults to LOGO_MCP_OCR_LANG",
					},
				},
				"required": []string{"image_path"},
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
