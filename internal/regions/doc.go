// Package regions carries the candidate boxes an upstream object detector
// proposes and turns them into the cropped images the embedding stage
// consumes.
//
// The matching engine never second-guesses the detector: geometry is used
// only for cropping and drawing, never for scoring. What the package does
// guard is alignment. The candidate list is positional; box i produces
// crop i, which produces embedding row i, which match results refer back
// to as index i. Every function here either preserves that ordering or
// fails outright; nothing is silently dropped or reordered.
package regions
