package selection

// ByCount returns exactly n features. See ExplainCount.
func ByCount(trace Trace, n int, dir Direction, opts ...ScanOption) (Features, error) {
	d, err := ExplainCount(trace, n, dir, opts...)
	if err != nil {
		return nil, err
	}
	return d.Features, nil
}

// ExplainCount stops at the iteration where n features are selected,
// ignoring all scores. n must be between 1 and the size of the universe
// (the feature count of the first record unless WithUniverse is given).
//
// Backward returns the first record with exactly n features. Forward
// returns the universe minus the first record with total-n features; if
// there is none and n equals the total, the whole universe is returned.
// Any other miss is ErrNotFound.
func ExplainCount(trace Trace, n int, dir Direction, opts ...ScanOption) (Decision, error) {
	const p = PolicyCount

	if err := checkDirection(p, dir); err != nil {
		return Decision{}, err
	}
	if len(trace) == 0 {
		return Decision{}, invalidArgument(p, "trace is empty")
	}

	cfg := newScanConfig(opts)
	u := cfg.universeFrom(trace[0])
	total := u.len()

	if n < 1 || n > total {
		return Decision{}, invalidArgument(p, "n must be between 1 and %d, got %d", total, n)
	}

	cfg.emit("selecting features by count", "direction", dir, "n", n, "total", total, "iterations", len(trace))

	switch dir {
	case Backward:
		for i, rec := range trace {
			if err := checkKeys(p, i, rec); err != nil {
				return Decision{}, err
			}
			if rec.Len() == n {
				cfg.emit("found iteration with requested feature count", "iteration", i, "n", n)
				return Decision{
					Features:  rec.Keys(),
					Policy:    p,
					Direction: dir,
					Reason:    ReasonCountMatched,
					Iteration: i,
				}, nil
			}
		}

	case Forward:
		want := total - n
		for i, rec := range trace {
			if err := checkKeys(p, i, rec); err != nil {
				return Decision{}, err
			}
			if rec.Len() == want {
				cfg.emit("found iteration with requested feature count", "iteration", i, "n", n, "remaining", want)
				return Decision{
					Features:  u.complement(rec),
					Policy:    p,
					Direction: dir,
					Reason:    ReasonCountMatched,
					Iteration: i,
				}, nil
			}
		}
		if n == total {
			cfg.emit("requested every feature, returning the universe", "n", n)
			return Decision{
				Features:  u.all(),
				Policy:    p,
				Direction: dir,
				Reason:    ReasonCountFallback,
				Iteration: -1,
			}, nil
		}
	}

	return Decision{}, notFound(p, "no iteration selects %d features", n)
}
