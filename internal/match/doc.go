// Package match implements the similarity decision engine for logo matching.
//
// Given embeddings for one or more query logos, the package answers two
// questions: how similar must a candidate region be before it counts as a
// match for each query (cutoff estimation), and which candidate regions
// actually do match (match resolution).
//
// # Cutoff Estimation
//
// A single fixed similarity threshold works poorly across logos. A plain
// circular mark scores high against almost anything, while an intricate
// wordmark rarely clears 0.5 even against a genuine sighting of itself. The
// engine therefore calibrates a separate cutoff per query from a large
// background population of unrelated embeddings: the cutoff is the empirical
// quantile below which a configured fraction of the background lies. A
// candidate scoring above it is a statistical outlier relative to background
// noise rather than a coincidental look-alike.
//
// Cutoffs depend only on the queries, the background, and the threshold
// fraction. The candidate set plays no part in calibration, so the same
// query keeps the same cutoff across every image it is searched in.
//
// # Resolution Contract
//
// Cutoffs are estimated from a histogram with bins of width Resolution, and
// similarity scores are rounded to that same resolution before they are
// compared against a cutoff. Sharing one constant keeps values that land
// exactly on a bin edge on the same side of every comparison: RoundScore and
// the cutoff edges are built from the same arithmetic, so equality at a
// boundary is bit-exact.
//
// # Statelessness
//
// All functions are pure. They read their input matrices, allocate fresh
// outputs, and hold no state between calls, so identical inputs always
// produce identical results. Concurrent calls are safe as long as callers do
// not mutate shared input slices mid-call; the background matrix is
// typically a read-only feature bank shared across calls.
package match
