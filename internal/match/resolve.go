package match

import "fmt"

// ResolveMatches applies per-query cutoffs to a candidate embedding set.
//
// It returns, for each query, the candidate indices whose rounded cosine
// similarity meets or exceeds that query's cutoff, together with the full
// rounded query-by-candidate similarity matrix the decision was made on.
// Scores are rounded with RoundScore before comparison, so a raw score a
// hair under a cutoff that rounds up to it does match.
//
// Queries and candidates must share a vector width, and exactly one cutoff
// must be supplied per query. An empty candidate set is not an error: there
// is nothing to match against, and both results come back empty no matter
// what the queries hold.
//
// Match indices within a query are in ascending candidate order, and a
// query may match zero, one, or every candidate. The function is
// deterministic: identical inputs produce identical output.
func ResolveMatches(queries, candidates [][]float32, cutoffs []float64) ([][]int, [][]float64, error) {
	if len(candidates) == 0 {
		return [][]int{}, [][]float64{}, nil
	}
	if len(cutoffs) != len(queries) {
		return nil, nil, fmt.Errorf("%w: %d cutoffs for %d queries", ErrCutoffCount, len(cutoffs), len(queries))
	}
	sims, err := cosineMatrix(queries, candidates)
	if err != nil {
		return nil, nil, err
	}
	matches := make([][]int, len(queries))
	for i, row := range sims {
		for j, s := range row {
			row[j] = RoundScore(s)
		}
		set := make([]int, 0)
		for j, s := range row {
			if s >= cutoffs[i] {
				set = append(set, j)
			}
		}
		matches[i] = set
	}
	return matches, sims, nil
}
