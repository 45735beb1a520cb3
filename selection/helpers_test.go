package selection

func fs(id int, score float64) FeatureScore {
	return FeatureScore{Feature: FeatureID(id), Score: score}
}

func rec(score float64, scores ...FeatureScore) IterationRecord {
	return IterationRecord{Score: score, FeatureScores: scores}
}

func ids(v ...int) Features {
	out := make(Features, len(v))
	for i, id := range v {
		out[i] = FeatureID(id)
	}
	return out
}

func cloneTrace(tr Trace) Trace {
	out := make(Trace, len(tr))
	for i, r := range tr {
		out[i] = IterationRecord{
			Score:         r.Score,
			FeatureScores: append([]FeatureScore(nil), r.FeatureScores...),
		}
	}
	return out
}

// backwardTrace removes one feature per iteration with mixed signs throughout
// and scores that stay below 1.
func backwardTrace() Trace {
	return Trace{
		rec(0.10, fs(0, 0.3), fs(1, -0.2), fs(2, 0.1), fs(3, 0.05)),
		rec(0.20, fs(0, 0.3), fs(1, -0.1), fs(2, 0.2)),
		rec(0.30, fs(0, -0.4), fs(1, 0.2)),
	}
}

// forwardTrace lists the candidates that have not been added yet.
func forwardTrace() Trace {
	return Trace{
		rec(0.10, fs(0, 0.3), fs(1, -0.2), fs(2, 0.1), fs(3, 0.05)),
		rec(0.20, fs(1, -0.1), fs(2, 0.2), fs(3, 0.4)),
		rec(0.30, fs(1, 0.2), fs(3, -0.3)),
	}
}
