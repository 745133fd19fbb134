package regions

import "image"

// Box is one candidate region proposed by the upstream detector, in pixel
// coordinates with an exclusive bottom-right corner. Label and Confidence
// are carried through for annotation but never influence matching.
type Box struct {
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	Label      string  `json:"label,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Width returns the box width in pixels.
func (b Box) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// Rect converts the box to a standard image rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2)
}

// Clamp intersects the box with the given bounds, keeping label and
// confidence. The result may be empty.
func (b Box) Clamp(bounds image.Rectangle) Box {
	r := b.Rect().Intersect(bounds)
	b.X1, b.Y1, b.X2, b.Y2 = r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	return b
}

// IoU returns the intersection-over-union of two boxes, 0 when they do not
// overlap.
func IoU(a, b Box) float64 {
	inter := a.Rect().Intersect(b.Rect())
	if inter.Empty() {
		return 0
	}
	interArea := inter.Dx() * inter.Dy()
	union := a.Width()*a.Height() + b.Width()*b.Height() - interArea
	if union <= 0 {
		return 0
	}
	return float64(interArea) / float64(union)
}
