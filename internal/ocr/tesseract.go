//go:build cgo

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/brandseek/logo-match-mcp/internal/regions"
)

// Available probes the linked Tesseract library.
func Available() Info {
	client := gosseract.NewClient()
	defer client.Close()
	return Info{Available: true, Version: client.Version()}
}

// ReadRegions runs OCR over the selected candidate boxes of img and
// returns the recognized text per box. An empty indices slice reads
// every box. The boxes keep the positional numbering used by match
// results, so callers can read text out of exactly the candidates a
// query matched.
func ReadRegions(img image.Image, boxes []regions.Box, indices []int, language string) ([]RegionText, error) {
	if len(boxes) == 0 {
		return []RegionText{}, nil
	}
	indices, err := checkIndices(boxes, indices)
	if err != nil {
		return nil, err
	}

	selected := make([]regions.Box, len(indices))
	for k, idx := range indices {
		selected[k] = boxes[idx]
	}
	crops, err := regions.Extract(img, selected)
	if err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			return nil, fmt.Errorf("failed to set OCR language %q: %w", language, err)
		}
	}

	out := make([]RegionText, 0, len(indices))
	for k, crop := range crops {
		text, conf, err := readImage(client, crop)
		if err != nil {
			return nil, fmt.Errorf("failed to read text from box %d: %w", indices[k], err)
		}
		out = append(out, RegionText{Index: indices[k], Text: text, Confidence: conf})
	}
	return out, nil
}

// readImage feeds one crop through the client and returns its trimmed
// text and mean word confidence.
func readImage(client *gosseract.Client, img image.Image) (string, float64, error) {
	path, err := saveTempPNG(img)
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(path)

	if err := client.SetImage(path); err != nil {
		return "", 0, fmt.Errorf("failed to set OCR image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	// Word boxes carry the only per-region confidence Tesseract
	// exposes; a failure here degrades to confidence 0 rather than
	// failing the readout.
	conf := 0.0
	if words, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil && len(words) > 0 {
		sum := 0.0
		for _, w := range words {
			sum += w.Confidence / 100.0
		}
		conf = sum / float64(len(words))
	}
	return strings.TrimSpace(text), conf, nil
}

// saveTempPNG writes img to a temporary PNG file and returns its path.
// The caller removes the file.
func saveTempPNG(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "logo-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return f.Name(), nil
}
