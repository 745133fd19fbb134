package regions

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Extract crops one sub-image per box, preserving index alignment: crop i
// comes from boxes[i]. Boxes reaching past the image edge are clamped
// first; a box that lies entirely outside the image fails the whole call,
// because dropping it would shift every later index.
func Extract(img image.Image, boxes []Box) ([]image.Image, error) {
	bounds := img.Bounds()
	out := make([]image.Image, len(boxes))
	for i, b := range boxes {
		c := b.Clamp(bounds)
		if c.Empty() {
			return nil, fmt.Errorf("regions: box %d (%d,%d)-(%d,%d) lies outside the %dx%d image",
				i, b.X1, b.Y1, b.X2, b.Y2, bounds.Dx(), bounds.Dy())
		}
		out[i] = imaging.Crop(img, c.Rect())
	}
	return out, nil
}
