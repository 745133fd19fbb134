package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandseek/logo-match-mcp/internal/annotate"
	"github.com/brandseek/logo-match-mcp/internal/embedding"
	"github.com/brandseek/logo-match-mcp/internal/imaging"
	"github.com/brandseek/logo-match-mcp/internal/match"
	"github.com/brandseek/logo-match-mcp/internal/ocr"
	"github.com/brandseek/logo-match-mcp/internal/regions"
	"github.com/brandseek/logo-match-mcp/internal/store"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "logo_match", "bank_build").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
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
//  2. Applies configured defaults for optional parameters
//  3. Loads images and banks through the server caches
//  4. Calls into the match/embedding/store/ocr packages
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Matching
	case "logo_match":
		return s.handleLogoMatch(ctx, args)
	case "logo_cutoffs":
		return s.handleLogoCutoffs(ctx, args)

	// Feature Extraction
	case "logo_embed":
		return s.handleLogoEmbed(ctx, args)

	// Feature Banks
	case "bank_build":
		return s.handleBankBuild(ctx, args)
	case "bank_info":
		return s.handleBankInfo(args)

	// Text Readout
	case "match_read_text":
		return s.handleMatchReadText(args)

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

// requireExtractor fails tools that need features when no model was
// configured at startup.
func (s *Server) requireExtractor() (embedding.Extractor, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("no feature extractor configured; set LOGO_MCP_MODEL_PATH")
	}
	return s.extractor, nil
}

// bankPath resolves the bank file for a request, preferring the
// request's own path over the configured default.
func (s *Server) bankPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if s.cfg.Match.BankPath != "" {
		return s.cfg.Match.BankPath, nil
	}
	return "", fmt.Errorf("no feature bank configured; set LOGO_MCP_BANK_PATH or pass bank_path")
}

// loadBoxes resolves candidate boxes for a request. Inline boxes win
// over a detections file; one of the two must be present, though either
// may legitimately be empty.
func loadBoxes(inline []regions.Box, detectionsPath string) ([]regions.Box, error) {
	if len(inline) > 0 {
		if err := regions.Validate(inline); err != nil {
			return nil, err
		}
		return inline, nil
	}
	if detectionsPath != "" {
		return regions.Load(detectionsPath)
	}
	return nil, fmt.Errorf("provide candidate boxes inline or via detections_path")
}

// queryLabel derives a display label from a logo image path.
func queryLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// === Matching Handlers ===

type logoMatchArgs struct {
	ImagePath      string        `json:"image_path"`
	LogoPaths      []string      `json:"logo_paths"`
	DetectionsPath string        `json:"detections_path"`
	Boxes          []regions.Box `json:"boxes"`
	BankPath       string        `json:"bank_path"`
	Threshold      float64       `json:"threshold"`
	Annotate       bool          `json:"annotate"`
}

// queryMatches reports the outcome for one logo query.
type queryMatches struct {
	Label   string    `json:"label"`
	Cutoff  float64   `json:"cutoff"`
	Matches []int     `json:"matches"`
	Scores  []float64 `json:"scores"`
}

type matchResult struct {
	Queries    []queryMatches   `json:"queries"`
	Candidates []regions.Box    `json:"candidates"`
	Threshold  float64          `json:"threshold"`
	Background int              `json:"background_size"`
	Annotation *annotate.Result `json:"annotation,omitempty"`
}

func (s *Server) handleLogoMatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a logoMatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = s.cfg.Match.Threshold
	}
	if len(a.LogoPaths) == 0 {
		return nil, fmt.Errorf("logo_paths must name at least one logo image")
	}

	ext, err := s.requireExtractor()
	if err != nil {
		return nil, err
	}
	bankFile, err := s.bankPath(a.BankPath)
	if err != nil {
		return nil, err
	}

	scene, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, err
	}
	boxes, err := loadBoxes(a.Boxes, a.DetectionsPath)
	if err != nil {
		return nil, err
	}
	logos, err := s.cache.LoadAll(a.LogoPaths)
	if err != nil {
		return nil, err
	}
	crops, err := regions.Extract(scene, boxes)
	if err != nil {
		return nil, err
	}

	queryFeats, err := embedding.BatchFeatures(ctx, ext, logos)
	if err != nil {
		return nil, fmt.Errorf("failed to extract logo features: %w", err)
	}
	candFeats, err := embedding.BatchFeatures(ctx, ext, crops)
	if err != nil {
		return nil, fmt.Errorf("failed to extract candidate features: %w", err)
	}

	bank, err := s.banks.get(bankFile)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cutoffs, err := match.EstimateCutoffs(queryFeats, bank.Rows(), a.Threshold)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"queries":    len(queryFeats),
		"background": bank.Count(),
		"elapsed":    time.Since(start),
	}).Debug("estimated cutoffs")

	sets, sims, err := match.ResolveMatches(queryFeats, candFeats, cutoffs)
	if err != nil {
		return nil, err
	}

	result := &matchResult{
		Queries:    make([]queryMatches, len(a.LogoPaths)),
		Candidates: boxes,
		Threshold:  a.Threshold,
		Background: bank.Count(),
	}
	for i, path := range a.LogoPaths {
		q := queryMatches{
			Label:   queryLabel(path),
			Cutoff:  cutoffs[i],
			Matches: []int{},
			Scores:  []float64{},
		}
		if i < len(sets) {
			q.Matches = sets[i]
			for _, j := range sets[i] {
				q.Scores = append(q.Scores, sims[i][j])
			}
		}
		result.Queries[i] = q
	}

	if a.Annotate {
		labels := make([]string, len(a.LogoPaths))
		for i, path := range a.LogoPaths {
			labels[i] = queryLabel(path)
		}
		annotation, err := annotate.DrawMatches(scene, labels, boxes, sets)
		if err != nil {
			return nil, fmt.Errorf("failed to annotate matches: %w", err)
		}
		result.Annotation = annotation
	}

	return result, nil
}

type logoCutoffsArgs struct {
	LogoPaths []string `json:"logo_paths"`
	BankPath  string   `json:"bank_path"`
	Threshold float64  `json:"threshold"`
}

type queryCutoff struct {
	Label  string  `json:"label"`
	Cutoff float64 `json:"cutoff"`
}

type cutoffsResult struct {
	Cutoffs    []queryCutoff `json:"cutoffs"`
	Threshold  float64       `json:"threshold"`
	Background int           `json:"background_size"`
}

func (s *Server) handleLogoCutoffs(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a logoCutoffsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == 0 {
		a.Threshold = s.cfg.Match.Threshold
	}
	if len(a.LogoPaths) == 0 {
		return nil, fmt.Errorf("logo_paths must name at least one logo image")
	}

	ext, err := s.requireExtractor()
	if err != nil {
		return nil, err
	}
	bankFile, err := s.bankPath(a.BankPath)
	if err != nil {
		return nil, err
	}

	logos, err := s.cache.LoadAll(a.LogoPaths)
	if err != nil {
		return nil, err
	}
	queryFeats, err := embedding.BatchFeatures(ctx, ext, logos)
	if err != nil {
		return nil, fmt.Errorf("failed to extract logo features: %w", err)
	}
	bank, err := s.banks.get(bankFile)
	if err != nil {
		return nil, err
	}

	cutoffs, err := match.EstimateCutoffs(queryFeats, bank.Rows(), a.Threshold)
	if err != nil {
		return nil, err
	}

	result := &cutoffsResult{
		Cutoffs:    make([]queryCutoff, len(cutoffs)),
		Threshold:  a.Threshold,
		Background: bank.Count(),
	}
	for i, c := range cutoffs {
		result.Cutoffs[i] = queryCutoff{Label: queryLabel(a.LogoPaths[i]), Cutoff: c}
	}
	return result, nil
}

// === Feature Extraction Handlers ===

type logoEmbedArgs struct {
	ImagePaths []string `json:"image_paths"`
}

type embedResult struct {
	Count int `json:"count"`
	Dim   int `json:"dim"`
}

func (s *Server) handleLogoEmbed(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a logoEmbedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.ImagePaths) == 0 {
		return nil, fmt.Errorf("image_paths must name at least one image")
	}

	ext, err := s.requireExtractor()
	if err != nil {
		return nil, err
	}
	imgs, err := imaging.LoadAll(a.ImagePaths)
	if err != nil {
		return nil, err
	}
	feats, err := embedding.BatchFeatures(ctx, ext, imgs)
	if err != nil {
		return nil, err
	}

	result := &embedResult{Count: len(feats)}
	if len(feats) > 0 {
		result.Dim = len(feats[0])
	}
	return result, nil
}

// === Feature Bank Handlers ===

type bankBuildArgs struct {
	ImageDir   string   `json:"image_dir"`
	ImagePaths []string `json:"image_paths"`
	OutPath    string   `json:"out_path"`
}

type bankBuildResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
	Dim   int    `json:"dim"`
}

func (s *Server) handleBankBuild(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a bankBuildArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutPath == "" {
		return nil, fmt.Errorf("out_path is required")
	}

	ext, err := s.requireExtractor()
	if err != nil {
		return nil, err
	}

	paths := a.ImagePaths
	if len(paths) == 0 {
		if a.ImageDir == "" {
			return nil, fmt.Errorf("provide image_paths or an image_dir")
		}
		paths, err = imaging.ListImages(a.ImageDir)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no images found in %s", a.ImageDir)
		}
	}
	imgs, err := imaging.LoadAll(paths)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(a.OutPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create bank file: %w", err)
	}
	count, dim, err := store.Build(ctx, ext, imgs, f)
	if err != nil {
		f.Close()
		os.Remove(a.OutPath)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close bank file: %w", err)
	}

	// A rebuilt file must not be served from a stale mapping.
	s.banks.evict(a.OutPath)

	s.log.WithFields(logrus.Fields{
		"path":  a.OutPath,
		"count": count,
		"dim":   dim,
	}).Info("built feature bank")

	return &bankBuildResult{Path: a.OutPath, Count: count, Dim: dim}, nil
}

type bankInfoArgs struct {
	Path string `json:"path"`
}

type bankInfoResult struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
	Dim   int    `json:"dim"`
	Size  int64  `json:"size_bytes"`
}

func (s *Server) handleBankInfo(args json.RawMessage) (interface{}, error) {
	var a bankInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	path, err := s.bankPath(a.Path)
	if err != nil {
		return nil, err
	}
	bank, err := s.banks.get(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat bank file: %w", err)
	}
	return &bankInfoResult{Path: path, Count: bank.Count(), Dim: bank.Dim(), Size: info.Size()}, nil
}

// === Text Readout Handlers ===

type matchReadTextArgs struct {
	ImagePath      string        `json:"image_path"`
	DetectionsPath string        `json:"detections_path"`
	Boxes          []regions.Box `json:"boxes"`
	Indices        []int         `json:"indices"`
	Language       string        `json:"language"`
}

type readTextResult struct {
	Language string           `json:"language"`
	Regions  []ocr.RegionText `json:"regions"`
}

func (s *Server) handleMatchReadText(args json.RawMessage) (interface{}, error) {
	var a matchReadTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.Match.OCRLanguage
	}

	if info := ocr.Available(); !info.Available {
		return nil, fmt.Errorf("text readout unavailable: %s", info.Error)
	}

	scene, err := s.cache.Load(a.ImagePath)
	if err != nil {
		return nil, err
	}
	boxes, err := loadBoxes(a.Boxes, a.DetectionsPath)
	if err != nil {
		return nil, err
	}

	regionsText, err := ocr.ReadRegions(scene, boxes, a.Indices, a.Language)
	if err != nil {
		return nil, err
	}
	return &readTextResult{Language: a.Language, Regions: regionsText}, nil
}
