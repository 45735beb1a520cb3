package selection

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// FeatureID is the integer index of a feature in the input data.
type FeatureID int

// FeatureScore is the score of a single feature at one iteration.
type FeatureScore struct {
	Feature FeatureID
	Score   float64
}

// IterationRecord is one step of a greedy selection trace. FeatureScores
// keeps the order the producer wrote the features in.
type IterationRecord struct {
	Score         float64
	FeatureScores []FeatureScore
}

// NewRecord builds a record from a map, ordering the features by id.
func NewRecord(score float64, scores map[FeatureID]float64) IterationRecord {
	rec := IterationRecord{
		Score:         score,
		FeatureScores: make([]FeatureScore, 0, len(scores)),
	}
	for id, s := range scores {
		rec.FeatureScores = append(rec.FeatureScores, FeatureScore{Feature: id, Score: s})
	}
	slices.SortFunc(rec.FeatureScores, func(a, b FeatureScore) int {
		return cmp.Compare(a.Feature, b.Feature)
	})
	return rec
}

// Keys returns a fresh slice of the record's feature ids in record order.
func (r IterationRecord) Keys() Features {
	keys := make(Features, len(r.FeatureScores))
	for i, fs := range r.FeatureScores {
		keys[i] = fs.Feature
	}
	return keys
}

// Len is the number of features in the record.
func (r IterationRecord) Len() int {
	return len(r.FeatureScores)
}

// minScore and maxScore must only be called on non-empty records.
func (r IterationRecord) minScore() float64 {
	m := r.FeatureScores[0].Score
	for _, fs := range r.FeatureScores[1:] {
		m = min(m, fs.Score)
	}
	return m
}

func (r IterationRecord) maxScore() float64 {
	m := r.FeatureScores[0].Score
	for _, fs := range r.FeatureScores[1:] {
		m = max(m, fs.Score)
	}
	return m
}

// Trace is the ordered list of iterations; index 0 is the first iteration
// performed.
type Trace []IterationRecord

// Features is a collection of selected feature ids.
type Features []FeatureID

func (f Features) Len() int {
	return len(f)
}

func (f Features) Contains(id FeatureID) bool {
	return slices.Contains(f, id)
}

// Sorted returns a copy in ascending order.
func (f Features) Sorted() Features {
	s := slices.Clone(f)
	if s == nil {
		s = Features{}
	}
	slices.Sort(s)
	return s
}

// Equal reports whether f and other hold the same set of ids, ignoring order.
func (f Features) Equal(other Features) bool {
	return slices.Equal(f.Sorted(), other.Sorted())
}

// String returns the ids in ascending order, separated by spaces.
func (f Features) String() string {
	parts := make([]string, 0, len(f))
	for _, id := range f.Sorted() {
		parts = append(parts, strconv.Itoa(int(id)))
	}
	return strings.Join(parts, " ")
}
