package match

import (
	"fmt"
	"math"
)

// Resolution is both the bin width of the cutoff histogram and the rounding
// step applied to similarity scores before thresholding. The two must stay
// equal: cutoffs are bin edges, scores are compared against them
// inclusively, and a score rounded at a coarser or finer step than the bin
// width would drift across bin boundaries.
const Resolution = 0.001

// numBins spans the half-open histogram range [0, 1) at Resolution width.
const numBins = int(1 / Resolution)

// Cosine returns the cosine similarity of two equal-length vectors, in
// [-1, 1]. If either vector has zero magnitude the similarity is 0; there
// is no direction to compare.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// RoundScore rounds a similarity score to the engine resolution using
// round-half-even, the same arithmetic the histogram bin edges are built
// with. A rounded score and a cutoff for the same bin compare equal.
func RoundScore(s float64) float64 {
	return math.RoundToEven(s/Resolution) * Resolution
}

// width returns the common row width of a matrix, or an error when rows
// are ragged. An empty matrix reports width -1, which is compatible with
// any other width.
func width(m [][]float32) (int, error) {
	if len(m) == 0 {
		return -1, nil
	}
	w := len(m[0])
	for i, row := range m {
		if len(row) != w {
			return 0, fmt.Errorf("%w: row %d has %d values, row 0 has %d", ErrShapeMismatch, i, len(row), w)
		}
	}
	return w, nil
}

// cosineMatrix computes the full cosine similarity matrix between the rows
// of x and the rows of y. Row norms are computed once per matrix, and rows
// with zero magnitude yield zero similarity against everything.
func cosineMatrix(x, y [][]float32) ([][]float64, error) {
	wx, err := width(x)
	if err != nil {
		return nil, err
	}
	wy, err := width(y)
	if err != nil {
		return nil, err
	}
	if wx >= 0 && wy >= 0 && wx != wy {
		return nil, fmt.Errorf("%w: %d-wide rows against %d-wide rows", ErrShapeMismatch, wx, wy)
	}
	nx := rowNorms(x)
	ny := rowNorms(y)
	out := make([][]float64, len(x))
	for i, xr := range x {
		row := make([]float64, len(y))
		if nx[i] != 0 {
			for j, yr := range y {
				if ny[j] == 0 {
					continue
				}
				var dot float64
				for k := range xr {
					dot += float64(xr[k]) * float64(yr[k])
				}
				row[j] = dot / (nx[i] * ny[j])
			}
		}
		out[i] = row
	}
	return out, nil
}

func rowNorms(m [][]float32) []float64 {
	norms := make([]float64, len(m))
	for i, row := range m {
		var sum float64
		for _, v := range row {
			sum += float64(v) * float64(v)
		}
		norms[i] = math.Sqrt(sum)
	}
	return norms
}
