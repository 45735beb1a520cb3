// Package selection decides which features a greedy transfer-entropy
// feature-selection run should have settled on.
//
// The greedy search itself happens elsewhere. It hands this package a Trace:
// one IterationRecord per step, each holding the aggregate score of the
// current feature set and a score for every feature still in play. The
// package looks back over that trace and picks a stopping point.
//
// # Policies
//
// Two policies are provided, both pure functions over the trace:
//   - Threshold: stop at the first iteration whose aggregate score is above
//     a threshold, or whose feature scores all have the unfavorable sign for
//     the direction (all positive when removing, all negative when adding).
//   - Count: stop at the iteration where exactly n features are selected,
//     regardless of scores.
//
// # Direction
//
// In a Backward run the records list the features that remain, so the
// selection is the stopping record's key set. In a Forward run the records
// list the candidates, so the selection is the universe captured from the
// first record minus the stopping record's keys.
//
// # Usage
//
//	features, err := selection.ByThreshold(trace, 0.05, selection.Backward)
//	if err != nil {
//	    return err
//	}
//
// Use a Selector to also get progress logging, metrics and tracing spans:
//
//	sl := selection.New(selection.WithVerbose(true), selection.WithMetrics(m))
//	decision, err := sl.Count(ctx, trace, 5, selection.Forward)
package selection
