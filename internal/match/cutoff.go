package match

import "fmt"

// EstimateCutoffs computes one similarity cutoff per query embedding from
// the distribution of that query's cosine similarity against a background
// population.
//
// threshold is the fraction of the background population that must fall
// below the cutoff and must lie in (0, 1]. The background set must be
// non-empty and share the query vector width. Candidates play no role here;
// a query's cutoff is fixed before any candidate is seen.
//
// # Algorithm
//
// For each query, every background similarity is accumulated into a
// histogram over the half-open range [0, 1) with bins of width Resolution.
// Similarities outside that range (negative, or at least 1) are not binned
// but still count toward the population size the threshold fraction is
// taken of. Walking bins in ascending order, the cutoff is the left edge of
// the highest bin whose cumulative count stays strictly below threshold
// times the population size.
//
// When even the first bin holds the threshold mass, the distribution is
// concentrated at the bottom of the range and the cutoff degenerates to 0.
// When the cumulative count never reaches the threshold mass, every bin
// qualifies and the cutoff is the top bin edge, 1 - Resolution.
//
// Cutoffs are returned in query order and always lie in [0, 1). Identical
// inputs produce identical cutoffs.
func EstimateCutoffs(queries, background [][]float32, threshold float64) ([]float64, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrThreshold, threshold)
	}
	if len(background) == 0 {
		return nil, ErrEmptyBackground
	}
	sims, err := cosineMatrix(queries, background)
	if err != nil {
		return nil, err
	}
	mass := threshold * float64(len(background))
	cutoffs := make([]float64, len(queries))
	for i, row := range sims {
		var bins [numBins]int
		for _, s := range row {
			if s < 0 || s >= 1 {
				continue
			}
			idx := int(s / Resolution)
			if idx >= numBins {
				idx = numBins - 1
			}
			bins[idx]++
		}
		cum := 0
		cutoff := 0.0
		for b, n := range bins {
			cum += n
			if float64(cum) < mass {
				cutoff = float64(b) * Resolution
			}
		}
		cutoffs[i] = cutoff
	}
	return cutoffs, nil
}
