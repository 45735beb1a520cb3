package tracefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.tefs.dev/featsel/selection"
)

type jsonEnvelope struct {
	Direction  string            `json:"direction"`
	Threshold  *float64          `json:"threshold"`
	Iterations []json.RawMessage `json:"iterations"`
}

type jsonRecord struct {
	TE            json.RawMessage `json:"TE"`
	FeatureScores json.RawMessage `json:"feature_scores"`
}

// DecodeJSON decodes a JSON trace document.
func DecodeJSON(data []byte) (*File, error) {
	var env jsonEnvelope
	if isList(data) {
		if err := json.Unmarshal(data, &env.Iterations); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
	}

	dir, err := parseDirection(env.Direction)
	if err != nil {
		return nil, err
	}

	f := &File{
		Direction: dir,
		Threshold: env.Threshold,
		Trace:     make(selection.Trace, 0, len(env.Iterations)),
	}
	for i, raw := range env.Iterations {
		rec, err := decodeJSONRecord(i, raw)
		if err != nil {
			return nil, err
		}
		f.Trace = append(f.Trace, rec)
	}
	return f, nil
}

func decodeJSONRecord(idx int, raw json.RawMessage) (selection.IterationRecord, error) {
	var jr jsonRecord
	if err := json.Unmarshal(raw, &jr); err != nil {
		return selection.IterationRecord{}, recordError(idx, "%s", err)
	}

	var rec selection.IterationRecord

	if len(jr.TE) == 0 || bytes.Equal(jr.TE, []byte("null")) {
		return rec, recordError(idx, "TE score is missing")
	}
	if err := json.Unmarshal(jr.TE, &rec.Score); err != nil {
		return rec, recordError(idx, "TE score must be a number")
	}

	scores, err := decodeJSONScores(idx, jr.FeatureScores)
	if err != nil {
		return rec, err
	}
	rec.FeatureScores = scores
	return rec, nil
}

// decodeJSONScores walks the feature_scores object token by token so the
// key order of the document is kept.
func decodeJSONScores(idx int, raw json.RawMessage) ([]selection.FeatureScore, error) {
	if len(raw) == 0 {
		return nil, recordError(idx, "feature_scores is missing")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, recordError(idx, "feature_scores: %s", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, recordError(idx, "feature_scores must be a mapping")
	}

	scores := []selection.FeatureScore{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, recordError(idx, "feature_scores: %s", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, recordError(idx, "feature_scores: unexpected key %v", tok)
		}
		id, err := parseFeatureID(idx, key)
		if err != nil {
			return nil, err
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, recordError(idx, "feature_scores: %s", err)
		}
		num, ok := tok.(json.Number)
		if !ok {
			return nil, recordError(idx, "score of feature %d must be a number", id)
		}
		score, err := num.Float64()
		if err != nil {
			return nil, recordError(idx, "score of feature %d: %s", id, err)
		}
		scores = append(scores, selection.FeatureScore{Feature: id, Score: score})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, recordError(idx, "feature_scores: %s", err)
	}
	return scores, nil
}
