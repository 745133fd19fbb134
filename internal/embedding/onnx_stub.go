//go:build !cgo

package embedding

import (
	"context"
	"image"
)

// ONNXExtractor is a placeholder in builds compiled without cgo, where the
// ONNX Runtime bindings cannot link. NewONNXExtractor always fails there.
type ONNXExtractor struct{}

func NewONNXExtractor(cfg ONNXConfig) (*ONNXExtractor, error) {
	return nil, ErrONNXUnavailable
}

func (e *ONNXExtractor) Run(ctx context.Context, batch []image.Image) (*Tensor, error) {
	return nil, ErrONNXUnavailable
}

func (e *ONNXExtractor) BatchSize() int { return 0 }

func (e *ONNXExtractor) InputSize() int { return 0 }

func (e *ONNXExtractor) Close() error { return nil }
