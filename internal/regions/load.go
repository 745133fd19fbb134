package regions

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a detector output file: a JSON array of box records. An empty
// array is a valid result, an image with nothing in it. Boxes with a
// non-positive extent are rejected; the detector contract is corner pairs
// with x2 > x1 and y2 > y1.
func Load(path string) ([]Box, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("regions: read detections: %w", err)
	}
	var boxes []Box
	if err := json.Unmarshal(raw, &boxes); err != nil {
		return nil, fmt.Errorf("regions: parse detections %s: %w", path, err)
	}
	if err := Validate(boxes); err != nil {
		return nil, err
	}
	return boxes, nil
}

// Validate checks that every box has a positive extent.
func Validate(boxes []Box) error {
	for i, b := range boxes {
		if b.Empty() {
			return fmt.Errorf("regions: box %d (%d,%d)-(%d,%d) has no area", i, b.X1, b.Y1, b.X2, b.Y2)
		}
	}
	return nil
}
