//go:build !cgo

package ocr

import (
	"image"

	"github.com/brandseek/logo-match-mcp/internal/regions"
)

// Available reports that text readout cannot run in this build.
func Available() Info {
	return Info{Available: false, Error: ErrUnavailable.Error()}
}

// ReadRegions validates its arguments and then reports ErrUnavailable,
// since the Tesseract bindings need cgo to link.
func ReadRegions(img image.Image, boxes []regions.Box, indices []int, language string) ([]RegionText, error) {
	if len(boxes) == 0 {
		return []RegionText{}, nil
	}
	if _, err := checkIndices(boxes, indices); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}
