//go:build cgo

package embedding

import (
	"context"
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// The ONNX Runtime environment is process-wide and set up at most once.
var (
	ortOnce    sync.Once
	ortInitErr error
)

func initRuntime(libraryPath string) error {
	ortOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNXExtractor runs a pretrained image model through ONNX Runtime with a
// fixed batch width. Input and output tensors are allocated once and
// reused across batches, so Run serializes behind a mutex.
type ONNXExtractor struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	cfg     ONNXConfig
}

// NewONNXExtractor loads the model, builds the session, and performs one
// warm-up inference so model or shape problems surface here rather than on
// the first real batch.
func NewONNXExtractor(cfg ONNXConfig) (*ONNXExtractor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := initRuntime(cfg.LibraryPath); err != nil {
		return nil, fmt.Errorf("embedding: initialize onnxruntime: %w", err)
	}

	inputShape := ort.NewShape(int64(cfg.BatchSize), 3, int64(cfg.InputSize), int64(cfg.InputSize))
	input, err := ort.NewTensor(inputShape, make([]float32, cfg.BatchSize*3*cfg.InputSize*cfg.InputSize))
	if err != nil {
		return nil, fmt.Errorf("embedding: create input tensor: %w", err)
	}

	outDims := []int64{int64(cfg.BatchSize)}
	for _, d := range cfg.FeatureShape {
		outDims = append(outDims, int64(d))
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(outDims...))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("embedding: create output tensor: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("embedding: create session options: %w", err)
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, options)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("embedding: load model %s: %w", cfg.ModelPath, err)
	}

	e := &ONNXExtractor{session: session, input: input, output: output, cfg: cfg}
	if err := e.session.Run(); err != nil {
		e.Close()
		return nil, fmt.Errorf("embedding: warm-up inference: %w", err)
	}
	return e, nil
}

// Run extracts features for exactly one batch of BatchSize images.
func (e *ONNXExtractor) Run(ctx context.Context, batch []image.Image) (*Tensor, error) {
	if len(batch) != e.cfg.BatchSize {
		return nil, fmt.Errorf("embedding: got %d images, session is built for batches of %d", len(batch), e.cfg.BatchSize)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := e.input.GetData()
	per := 3 * e.cfg.InputSize * e.cfg.InputSize
	for i, img := range batch {
		copy(buf[i*per:(i+1)*per], Preprocess(img, e.cfg.InputSize))
	}

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("embedding: inference: %w", err)
	}

	src := e.output.GetData()
	data := make([]float32, len(src))
	copy(data, src)

	shape := append([]int{e.cfg.BatchSize}, e.cfg.FeatureShape...)
	return &Tensor{Shape: shape, Data: data}, nil
}

// BatchSize reports the fixed batch width the session was built with.
func (e *ONNXExtractor) BatchSize() int { return e.cfg.BatchSize }

// InputSize reports the square input resolution.
func (e *ONNXExtractor) InputSize() int { return e.cfg.InputSize }

// Close releases the session and its tensors. The extractor must not be
// used afterwards.
func (e *ONNXExtractor) Close() error {
	var first error
	if e.session != nil {
		if err := e.session.Destroy(); err != nil && first == nil {
			first = err
		}
		e.session = nil
	}
	if e.input != nil {
		if err := e.input.Destroy(); err != nil && first == nil {
			first = err
		}
		e.input = nil
	}
	if e.output != nil {
		if err := e.output.Destroy(); err != nil && first == nil {
			first = err
		}
		e.output = nil
	}
	return first
}
