package match

import "errors"

// Engine errors. All report precondition violations detected before any
// partial result is produced; none are retryable.
var (
	// ErrShapeMismatch indicates two embedding matrices with different
	// vector widths were compared, or a single matrix has ragged rows.
	ErrShapeMismatch = errors.New("match: embedding width mismatch")

	// ErrCutoffCount indicates the cutoff list length does not equal the
	// number of query embeddings.
	ErrCutoffCount = errors.New("match: cutoff count does not match query count")

	// ErrThreshold indicates a background fraction outside (0, 1].
	ErrThreshold = errors.New("match: threshold must be in (0, 1]")

	// ErrEmptyBackground indicates cutoff estimation was attempted against
	// an empty background population.
	ErrEmptyBackground = errors.New("match: background embedding set is empty")
)
