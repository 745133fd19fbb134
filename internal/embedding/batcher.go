// Package embedding turns images into fixed-width feature vectors by
// running them through a pretrained extractor in fixed-size batches.
//
// The extractor itself is pluggable. The production implementation wraps an
// ONNX image model; tests substitute cheap deterministic extractors. What
// the package guarantees is the batching contract: callers hand over any
// number of images and get back exactly one flattened vector per image, in
// input order, no matter how the extractor's batch width slices the input.
package embedding

import (
	"context"
	"fmt"
	"image"
)

// Tensor is the raw feature block an extractor produces for one batch.
// Shape[0] is the number of images in the batch; any remaining dims
// describe the per-image feature map, which consumers flatten row-major.
type Tensor struct {
	Shape []int
	Data  []float32
}

// Rows returns the leading dim, the number of images the block covers.
func (t *Tensor) Rows() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return t.Shape[0]
}

// Width returns the flattened per-image feature length, the product of
// every dim after the first.
func (t *Tensor) Width() int {
	w := 1
	for _, d := range t.Shape[1:] {
		w *= d
	}
	return w
}

// Extractor produces feature tensors for fixed-size image batches.
type Extractor interface {
	// Run extracts features for one batch. Callers always pass exactly
	// BatchSize images; short inputs are padded before they get here.
	Run(ctx context.Context, batch []image.Image) (*Tensor, error)

	// BatchSize is the fixed batch width the extractor was built for.
	BatchSize() int

	// InputSize is the square pixel size images are scaled to.
	InputSize() int
}

// BatchFeatures runs every image through the extractor and returns one
// flattened feature vector per image, in input order.
//
// The final batch is padded up to the extractor's batch size by repeating
// the last image; rows produced for the padding are dropped, so the result
// always has exactly len(imgs) rows. Feature maps with trailing dims (a
// convolutional C x H x W block, say) are flattened row-major, giving every
// vector the same width. An empty input yields an empty matrix without
// touching the extractor.
func BatchFeatures(ctx context.Context, ext Extractor, imgs []image.Image) ([][]float32, error) {
	if len(imgs) == 0 {
		return [][]float32{}, nil
	}
	size := ext.BatchSize()
	if size <= 0 {
		return nil, fmt.Errorf("embedding: extractor reports batch size %d", size)
	}

	next := batches(imgs, size)
	out := make([][]float32, 0, len(imgs))
	for {
		batch, ok := next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := ext.Run(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embedding: extract batch: %w", err)
		}
		rows, err := t.rows()
		if err != nil {
			return nil, err
		}
		if len(out) > 0 && len(rows) > 0 && len(rows[0]) != len(out[0]) {
			return nil, fmt.Errorf("embedding: batch width changed from %d to %d", len(out[0]), len(rows[0]))
		}
		out = append(out, rows...)
	}

	if len(out) < len(imgs) {
		return nil, fmt.Errorf("embedding: extractor produced %d rows for %d images", len(out), len(imgs))
	}
	return out[:len(imgs)], nil
}

// batches returns a pull-based producer of fixed-size image batches. The
// producer is finite and not restartable. The last batch is padded by
// repeating the final image until it reaches the batch size.
func batches(imgs []image.Image, size int) func() ([]image.Image, bool) {
	pos := 0
	return func() ([]image.Image, bool) {
		if pos >= len(imgs) {
			return nil, false
		}
		end := pos + size
		if end <= len(imgs) {
			b := imgs[pos:end]
			pos = end
			return b, true
		}
		b := make([]image.Image, size)
		n := copy(b, imgs[pos:])
		for i := n; i < size; i++ {
			b[i] = imgs[len(imgs)-1]
		}
		pos = len(imgs)
		return b, true
	}
}

// rows splits the tensor into one freshly allocated vector per image.
// Copies are deliberate: extractors reuse their output buffer between
// batches, so views into it would be clobbered by the next Run.
func (t *Tensor) rows() ([][]float32, error) {
	if t.Rows() <= 0 {
		return nil, fmt.Errorf("embedding: tensor shape %v has no batch dim", t.Shape)
	}
	for _, d := range t.Shape[1:] {
		if d <= 0 {
			return nil, fmt.Errorf("embedding: tensor shape %v has a non-positive dim", t.Shape)
		}
	}
	n := t.Rows()
	w := t.Width()
	if len(t.Data) != n*w {
		return nil, fmt.Errorf("embedding: %d values do not fill tensor shape %v", len(t.Data), t.Shape)
	}
	rows := make([][]float32, n)
	for i := 0; i < n; i++ {
		row := make([]float32, w)
		copy(row, t.Data[i*w:(i+1)*w])
		rows[i] = row
	}
	return rows, nil
}
