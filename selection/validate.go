package selection

import "math"

func checkDirection(p Policy, d Direction) error {
	if !d.valid() {
		return invalidArgument(p, "direction %s must be forward or backward", d)
	}
	return nil
}

// checkKeys rejects a record that lists the same feature twice.
func checkKeys(p Policy, idx int, rec IterationRecord) error {
	seen := make(map[FeatureID]struct{}, rec.Len())
	for _, fs := range rec.FeatureScores {
		if _, ok := seen[fs.Feature]; ok {
			return invalidRecord(p, idx, "feature %d listed more than once", fs.Feature)
		}
		seen[fs.Feature] = struct{}{}
	}
	return nil
}

// checkScores validates a record for the threshold rule. Empty feature
// scores are only accepted when allowEmpty is set.
func checkScores(p Policy, idx int, rec IterationRecord, allowEmpty bool) error {
	if math.IsNaN(rec.Score) {
		return invalidRecord(p, idx, "aggregate score must be a number")
	}
	if rec.Len() == 0 && !allowEmpty {
		return invalidRecord(p, idx, "feature scores must not be empty")
	}
	for _, fs := range rec.FeatureScores {
		if math.IsNaN(fs.Score) {
			return invalidRecord(p, idx, "score of feature %d must be a number", fs.Feature)
		}
	}
	return checkKeys(p, idx, rec)
}
