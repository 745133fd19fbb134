package embedding

import "errors"

// ErrONNXUnavailable is returned by NewONNXExtractor in builds compiled
// without cgo, where the ONNX Runtime bindings cannot link.
var ErrONNXUnavailable = errors.New("embedding: onnx extractor requires a cgo-enabled build")

// ONNXConfig describes the pretrained model session behind an
// ONNXExtractor.
type ONNXConfig struct {
	// ModelPath locates the .onnx model file.
	ModelPath string

	// LibraryPath optionally points at the onnxruntime shared library.
	// Empty means the platform default lookup.
	LibraryPath string

	// InputName and OutputName are the model's tensor names.
	InputName  string
	OutputName string

	// InputSize is the square resolution images are scaled to.
	InputSize int

	// BatchSize is the fixed batch width the session is built with.
	BatchSize int

	// FeatureShape holds the per-image output dims, for example
	// [1280 7 7] for a final convolutional block. The extractor's output
	// tensor is allocated as BatchSize followed by these dims.
	FeatureShape []int
}

func (c ONNXConfig) validate() error {
	if c.ModelPath == "" {
		return errors.New("embedding: model path is empty")
	}
	if c.InputSize <= 0 {
		return errors.New("embedding: input size must be positive")
	}
	if c.BatchSize <= 0 {
		return errors.New("embedding: batch size must be positive")
	}
	if len(c.FeatureShape) == 0 {
		return errors.New("embedding: feature shape is empty")
	}
	for _, d := range c.FeatureShape {
		if d <= 0 {
			return errors.New("embedding: feature shape dims must be positive")
		}
	}
	if c.InputName == "" || c.OutputName == "" {
		return errors.New("embedding: model input and output names are required")
	}
	return nil
}
