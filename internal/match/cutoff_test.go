package match

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestEstimateCutoffs_ThresholdRange(t *testing.T) {
	q := [][]float32{vec2(1, 0)}
	bg := [][]float32{vec2(0, 1)}

	for _, th := range []float64{0, -0.5, 1.0001, 2} {
		if _, err := EstimateCutoffs(q, bg, th); !errors.Is(err, ErrThreshold) {
			t.Errorf("threshold %v: got %v, want ErrThreshold", th, err)
		}
	}

	if _, err := EstimateCutoffs(q, bg, 1); err != nil {
		t.Errorf("threshold 1 is inside the valid range, got %v", err)
	}
}

func TestEstimateCutoffs_EmptyBackground(t *testing.T) {
	_, err := EstimateCutoffs([][]float32{vec2(1, 0)}, nil, 0.95)
	if !errors.Is(err, ErrEmptyBackground) {
		t.Errorf("got %v, want ErrEmptyBackground", err)
	}
}

func TestEstimateCutoffs_WidthMismatch(t *testing.T) {
	if _, err := EstimateCutoffs([][]float32{{1, 0, 0}}, [][]float32{{0, 1}}, 0.95); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("3-wide queries against 2-wide background: got %v, want ErrShapeMismatch", err)
	}

	ragged := [][]float32{{1, 0}, {1}}
	if _, err := EstimateCutoffs(ragged, [][]float32{{0, 1}}, 0.95); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("ragged queries: got %v, want ErrShapeMismatch", err)
	}
}

func TestEstimateCutoffs_OnePerQuery(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	queries := make([][]float32, 5)
	for i := range queries {
		queries[i] = randomPositiveUnit(rng, 32)
	}
	bg := make([][]float32, 40)
	for i := range bg {
		bg[i] = randomPositiveUnit(rng, 32)
	}

	cutoffs, err := EstimateCutoffs(queries, bg, 0.9)
	if err != nil {
		t.Fatalf("EstimateCutoffs failed: %v", err)
	}

	if len(cutoffs) != len(queries) {
		t.Fatalf("got %d cutoffs for %d queries", len(cutoffs), len(queries))
	}
	for i, c := range cutoffs {
		if c < 0 || c >= 1 {
			t.Errorf("cutoff %d = %v, want a value in [0, 1)", i, c)
		}
	}
}

func TestEstimateCutoffs_EmptyQueries(t *testing.T) {
	cutoffs, err := EstimateCutoffs(nil, [][]float32{vec2(1, 0)}, 0.95)
	if err != nil {
		t.Fatalf("EstimateCutoffs failed: %v", err)
	}
	if len(cutoffs) != 0 {
		t.Errorf("got %d cutoffs for zero queries", len(cutoffs))
	}
}

func TestEstimateCutoffs_TracksPercentile(t *testing.T) {
	// The cutoff must sit just below the empirical 95th percentile of the
	// background similarity distribution: strictly under it, and never
	// more than two bin widths under it.
	rng := rand.New(rand.NewSource(42))
	query := randomPositiveUnit(rng, 128)
	bg := make([][]float32, 1000)
	for i := range bg {
		bg[i] = randomPositiveUnit(rng, 128)
	}

	cutoffs, err := EstimateCutoffs([][]float32{query}, bg, 0.95)
	if err != nil {
		t.Fatalf("EstimateCutoffs failed: %v", err)
	}

	sims := make([]float64, len(bg))
	for i, b := range bg {
		sims[i] = Cosine(query, b)
	}
	sort.Float64s(sims)
	p95 := sims[949]

	cutoff := cutoffs[0]
	if cutoff >= p95 {
		t.Errorf("cutoff %v is not below the 95th percentile %v", cutoff, p95)
	}
	if p95-cutoff > 2*Resolution+1e-9 {
		t.Errorf("cutoff %v is more than two bins under the 95th percentile %v", cutoff, p95)
	}
}

func TestEstimateCutoffs_MonotonicInThreshold(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	query := randomPositiveUnit(rng, 64)
	bg := make([][]float32, 500)
	for i := range bg {
		bg[i] = randomPositiveUnit(rng, 64)
	}

	prev := -1.0
	for _, th := range []float64{0.5, 0.8, 0.9, 0.95, 0.99, 1} {
		cutoffs, err := EstimateCutoffs([][]float32{query}, bg, th)
		if err != nil {
			t.Fatalf("EstimateCutoffs(threshold=%v) failed: %v", th, err)
		}
		if cutoffs[0] < prev {
			t.Errorf("cutoff %v at threshold %v dropped below %v", cutoffs[0], th, prev)
		}
		prev = cutoffs[0]
	}
}

func TestEstimateCutoffs_MassAtBottom(t *testing.T) {
	// Every background vector is orthogonal to the query, so all the
	// similarity mass lands in the first bin and the cutoff degenerates
	// to the bottom edge of the range.
	query := []float32{1, 0, 0}
	bg := [][]float32{{0, 1, 0}, {0, 0, 1}, {0, 1, 1}}

	cutoffs, err := EstimateCutoffs([][]float32{query}, bg, 0.95)
	if err != nil {
		t.Fatalf("EstimateCutoffs failed: %v", err)
	}
	if cutoffs[0] != 0 {
		t.Errorf("cutoff = %v, want 0", cutoffs[0])
	}
}

func TestEstimateCutoffs_TiesAtTop(t *testing.T) {
	// Background nearly identical to the query piles the whole
	// distribution into the top bin; the cutoff falls back to the last
	// edge below it even at threshold 1.
	query := vec2(1, 0)
	bg := [][]float32{
		vec2(1, 0.005), vec2(1, 0.008), vec2(1, -0.009),
		vec2(1, 0.012), vec2(1, -0.006),
	}

	for _, th := range []float64{0.95, 1} {
		cutoffs, err := EstimateCutoffs([][]float32{query}, bg, th)
		if err != nil {
			t.Fatalf("EstimateCutoffs(threshold=%v) failed: %v", th, err)
		}
		if cutoffs[0] != 0.998 {
			t.Errorf("threshold %v: cutoff = %v, want 0.998", th, cutoffs[0])
		}
	}
}

func TestEstimateCutoffs_OutOfRangeCountsTowardMass(t *testing.T) {
	// Similarities outside [0, 1) are never binned, but the threshold
	// fraction is still taken of the whole population. With most of the
	// mass out of range the cumulative count never reaches it and the
	// cutoff lands on the top bin edge.
	query := vec2(1, 0)
	bg := [][]float32{
		vec2(-1, 0), vec2(-1, 0), vec2(-1, 0),
		vec2(-1, 0), vec2(-1, 0), vec2(-1, 0),
		vec2(1, 2), vec2(1, 2), vec2(1, 2), vec2(1, 2),
	}

	cutoffs, err := EstimateCutoffs([][]float32{query}, bg, 0.95)
	if err != nil {
		t.Fatalf("EstimateCutoffs failed: %v", err)
	}
	if cutoffs[0] != 1-Resolution {
		t.Errorf("cutoff = %v, want %v", cutoffs[0], 1-Resolution)
	}
}
