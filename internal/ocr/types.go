package ocr

import (
	"errors"
	"fmt"

	"github.com/brandseek/logo-match-mcp/internal/regions"
)

// ErrUnavailable is returned by ReadRegions in builds compiled without
// cgo, where the Tesseract bindings cannot link.
var ErrUnavailable = errors.New("ocr: text readout requires a cgo-enabled build")

// RegionText is the text read from one candidate region.
type RegionText struct {
	// Index is the candidate box the text came from, in the same
	// positional numbering match results use.
	Index int `json:"index"`

	// Text is the recognized text, trimmed of surrounding whitespace.
	Text string `json:"text"`

	// Confidence is the mean word confidence in [0, 1]; 0 when the
	// region held no recognizable words.
	Confidence float64 `json:"confidence"`
}

// Info reports whether text readout is usable in this build.
type Info struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// checkIndices validates that every requested index points into the box
// list. An empty request selects every box.
func checkIndices(boxes []regions.Box, indices []int) ([]int, error) {
	if len(indices) == 0 {
		all := make([]int, len(boxes))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(boxes) {
			return nil, fmt.Errorf("ocr: index %d outside %d candidate boxes", idx, len(boxes))
		}
	}
	return indices, nil
}
