package annotate

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/brandseek/logo-match-mcp/internal/regions"
)

// borderWidth is the box outline thickness in pixels.
const borderWidth = 3

// Result is an annotated copy of the searched image plus a summary of
// what was drawn for each query.
type Result struct {
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	MimeType    string         `json:"mime_type"`
	ImageBase64 string         `json:"image_base64"`
	Queries     []QuerySummary `json:"queries"`
}

// QuerySummary reports the drawing done for one query.
type QuerySummary struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Matches int    `json:"matches"`
}

// DrawMatches renders every query's matched candidate boxes onto a copy of
// the base image and returns it PNG-encoded. matchSets[i] holds candidate
// indices for labels[i], exactly as the resolver produced them.
//
// With no candidate boxes at all there is nothing to draw and the base
// image is encoded unchanged; that is a no-op, not an error. A match index
// outside the box list is an error, since it can only mean the match sets
// and the box list come from different runs.
func DrawMatches(base image.Image, labels []string, boxes []regions.Box, matchSets [][]int) (*Result, error) {
	if len(matchSets) > len(labels) {
		return nil, fmt.Errorf("annotate: %d match sets for %d labels", len(matchSets), len(labels))
	}
	for i, set := range matchSets {
		for _, c := range set {
			if c < 0 || c >= len(boxes) {
				return nil, fmt.Errorf("annotate: query %d match index %d outside %d candidate boxes", i, c, len(boxes))
			}
		}
	}

	colors := Palette(len(labels))
	out := base
	if len(boxes) > 0 {
		out = Overlay(base, labels, boxes, matchSets, colors)
	}

	res := &Result{
		Width:    base.Bounds().Dx(),
		Height:   base.Bounds().Dy(),
		MimeType: "image/png",
	}
	for i, label := range labels {
		matched := 0
		if i < len(matchSets) {
			matched = len(matchSets[i])
		}
		res.Queries = append(res.Queries, QuerySummary{
			Label:   label,
			Color:   hexColor(colors[i]),
			Matches: matched,
		})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("annotate: encode image: %w", err)
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return res, nil
}

// Overlay draws the matched boxes onto a fresh RGBA copy of base and
// returns it. The base image is never written to. Callers are expected to
// pass match indices that point into boxes; DrawMatches validates them.
func Overlay(base image.Image, labels []string, boxes []regions.Box, matchSets [][]int, colors []color.RGBA) *image.RGBA {
	dst := image.NewRGBA(base.Bounds())
	draw.Draw(dst, dst.Bounds(), base, base.Bounds().Min, draw.Src)

	for i, set := range matchSets {
		for _, c := range set {
			b := boxes[c].Clamp(dst.Bounds())
			if b.Empty() {
				continue
			}
			drawBorder(dst, b, colors[i])
			drawTag(dst, b, labels[i], colors[i])
		}
	}
	return dst
}

// drawBorder outlines the box, keeping the stroke inside its edges.
func drawBorder(dst *image.RGBA, b regions.Box, col color.RGBA) {
	for t := 0; t < borderWidth; t++ {
		x1, y1 := b.X1+t, b.Y1+t
		x2, y2 := b.X2-1-t, b.Y2-1-t
		if x2 <= x1 || y2 <= y1 {
			return
		}
		for x := x1; x <= x2; x++ {
			dst.SetRGBA(x, y1, col)
			dst.SetRGBA(x, y2, col)
		}
		for y := y1; y <= y2; y++ {
			dst.SetRGBA(x1, y, col)
			dst.SetRGBA(x2, y, col)
		}
	}
}

// drawTag puts the query label in a filled tag above the box, or just
// inside it when the box touches the top of the image.
func drawTag(dst *image.RGBA, b regions.Box, label string, col color.RGBA) {
	if label == "" {
		return
	}
	face := basicfont.Face7x13
	w := font.MeasureString(face, label).Ceil() + 8
	h := face.Metrics().Height.Ceil() + 4

	x, y := b.X1, b.Y1-h
	if y < dst.Bounds().Min.Y {
		y = b.Y1
	}
	tag := image.Rect(x, y, x+w, y+h).Intersect(dst.Bounds())
	if tag.Empty() {
		return
	}
	draw.Draw(dst, tag, image.NewUniform(col), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor(col)),
		Face: face,
		Dot:  fixed.P(x+4, y+2+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(label)
}
