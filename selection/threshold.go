package selection

import "math"

// ByThreshold returns the features selected by the threshold stopping rule.
// See ExplainThreshold.
func ByThreshold(trace Trace, threshold float64, dir Direction, opts ...ScanOption) (Features, error) {
	d, err := ExplainThreshold(trace, threshold, dir, opts...)
	if err != nil {
		return nil, err
	}
	return d.Features, nil
}

// ExplainThreshold scans trace in order and stops at the first record whose
// aggregate score is strictly above threshold, or whose feature scores are
// all strictly positive (Backward) or all strictly negative (Forward).
//
// At the stopping record a Backward run selects that record's features and
// a Forward run selects the universe minus that record's features.
//
// When no record stops the scan, a Backward run keeps the features of the
// last record rather than returning nothing, and a Forward run keeps the
// whole universe.
//
// The first and last records may have empty feature scores (the empty set
// at the start of a forward search or the end of a backward one); empty
// records never trigger the sign rule.
func ExplainThreshold(trace Trace, threshold float64, dir Direction, opts ...ScanOption) (Decision, error) {
	const p = PolicyThreshold

	if err := checkDirection(p, dir); err != nil {
		return Decision{}, err
	}
	if math.IsNaN(threshold) {
		return Decision{}, invalidArgument(p, "threshold must be a number")
	}
	if len(trace) == 0 {
		return Decision{}, invalidArgument(p, "trace is empty")
	}

	cfg := newScanConfig(opts)
	cfg.emit("selecting features", "direction", dir, "threshold", threshold, "iterations", len(trace))

	last := len(trace) - 1
	var u *universe

	for i, rec := range trace {
		if err := checkScores(p, i, rec, i == 0 || i == last); err != nil {
			return Decision{}, err
		}
		if u == nil {
			u = cfg.universeFrom(rec)
		}

		reason := ReasonNone

		if rec.Score > threshold {
			cfg.emit("stopping condition reached: score above threshold",
				"iteration", i, "score", rec.Score, "threshold", threshold)
			reason = ReasonScoreExceeded
		}

		if rec.Len() > 0 {
			switch dir {
			case Backward:
				if rec.minScore() > 0 {
					cfg.emit("stopping condition reached: all feature scores are positive", "iteration", i)
					if reason == ReasonNone {
						reason = ReasonAllPositive
					}
				}
			case Forward:
				if rec.maxScore() < 0 {
					cfg.emit("stopping condition reached: all feature scores are negative", "iteration", i)
					if reason == ReasonNone {
						reason = ReasonAllNegative
					}
				}
			}
		}

		if reason == ReasonNone {
			continue
		}

		d := Decision{Policy: p, Direction: dir, Reason: reason, Iteration: i}
		switch dir {
		case Backward:
			// the features that survived up to here
			d.Features = rec.Keys()
		case Forward:
			// the features not yet incorporated at this point
			d.Features = u.complement(rec)
		}
		return d, nil
	}

	cfg.emit("stopping condition not reached", "iterations", len(trace))

	d := Decision{Policy: p, Direction: dir, Reason: ReasonExhausted, Iteration: -1}
	switch dir {
	case Backward:
		// keep whatever the last iteration left instead of selecting nothing
		d.Features = trace[last].Keys()
	case Forward:
		d.Features = u.all()
	}
	return d, nil
}
