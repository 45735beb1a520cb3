package tracefile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"go.tefs.dev/featsel/selection"
)

// DecodeYAML decodes a YAML trace document. Mappings are walked as nodes so
// the key order of feature_scores is kept.
func DecodeYAML(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty trace document")
	}
	root := doc.Content[0]

	f := &File{}
	var iterations *yaml.Node

	switch root.Kind {
	case yaml.SequenceNode:
		iterations = root

	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			switch key.Value {
			case "direction":
				dir, err := parseDirection(value.Value)
				if err != nil {
					return nil, err
				}
				f.Direction = dir
			case "threshold":
				var th float64
				if err := value.Decode(&th); err != nil {
					return nil, fmt.Errorf("threshold: %w", err)
				}
				f.Threshold = &th
			case "iterations":
				iterations = value
			}
		}
		if iterations == nil {
			return nil, errors.New("iterations is missing")
		}

	default:
		return nil, fmt.Errorf("line %d: trace must be a list or a mapping", root.Line)
	}

	if iterations.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: iterations must be a list", iterations.Line)
	}

	f.Trace = make(selection.Trace, 0, len(iterations.Content))
	for i, node := range iterations.Content {
		rec, err := decodeYAMLRecord(i, node)
		if err != nil {
			return nil, err
		}
		f.Trace = append(f.Trace, rec)
	}
	return f, nil
}

func decodeYAMLRecord(idx int, node *yaml.Node) (selection.IterationRecord, error) {
	var rec selection.IterationRecord

	if node.Kind != yaml.MappingNode {
		return rec, recordError(idx, "line %d: record must be a mapping", node.Line)
	}

	var te, scores *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "TE":
			te = node.Content[i+1]
		case "feature_scores":
			scores = node.Content[i+1]
		}
	}

	if te == nil || te.Tag == "!!null" {
		return rec, recordError(idx, "TE score is missing")
	}
	if !isNumberTag(te.Tag) || te.Decode(&rec.Score) != nil {
		return rec, recordError(idx, "line %d: TE score must be a number", te.Line)
	}

	if scores == nil {
		return rec, recordError(idx, "feature_scores is missing")
	}
	if scores.Kind != yaml.MappingNode {
		return rec, recordError(idx, "line %d: feature_scores must be a mapping", scores.Line)
	}

	rec.FeatureScores = make([]selection.FeatureScore, 0, len(scores.Content)/2)
	for i := 0; i+1 < len(scores.Content); i += 2 {
		key, value := scores.Content[i], scores.Content[i+1]

		id, err := parseFeatureID(idx, key.Value)
		if err != nil {
			return rec, err
		}

		var score float64
		if !isNumberTag(value.Tag) || value.Decode(&score) != nil {
			return rec, recordError(idx, "line %d: score of feature %d must be a number", value.Line, id)
		}
		rec.FeatureScores = append(rec.FeatureScores, selection.FeatureScore{Feature: id, Score: score})
	}
	return rec, nil
}

func isNumberTag(tag string) bool {
	return tag == "!!int" || tag == "!!float"
}
