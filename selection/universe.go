package selection

import "slices"

// universe is the initial feature set of a run, captured once per call.
type universe struct {
	order Features
	set   map[FeatureID]struct{}
}

func newUniverse(ids Features) *universe {
	u := &universe{
		order: make(Features, 0, len(ids)),
		set:   make(map[FeatureID]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, ok := u.set[id]; ok {
			continue
		}
		u.set[id] = struct{}{}
		u.order = append(u.order, id)
	}
	return u
}

func (u *universe) len() int {
	return len(u.order)
}

func (u *universe) all() Features {
	return slices.Clone(u.order)
}

// complement returns the universe minus the record's keys, in universe order.
func (u *universe) complement(rec IterationRecord) Features {
	present := make(map[FeatureID]struct{}, rec.Len())
	for _, fs := range rec.FeatureScores {
		present[fs.Feature] = struct{}{}
	}
	out := Features{}
	for _, id := range u.order {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
