// Package tracefile reads the iteration traces written by the greedy
// feature search so they can be handed to the selection package.
//
// A trace file is either a bare list of records or an envelope that also
// carries the run's direction and threshold:
//
//	{
//	  "direction": "backward",
//	  "threshold": 0.05,
//	  "iterations": [
//	    {"TE": 0.01, "feature_scores": {"0": 0.4, "3": -0.2}},
//	    {"TE": 0.02, "feature_scores": {"0": 0.5}}
//	  ]
//	}
//
// JSON and YAML are supported. The order of feature_scores keys is kept.
package tracefile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.ntppool.org/common/tracing"
	"go.opentelemetry.io/otel/attribute"

	"go.tefs.dev/featsel/selection"
)

// File is a decoded trace file.
type File struct {
	Path string

	// Direction is DirectionUnspecified when the file does not name one.
	Direction selection.Direction

	// Threshold is nil when the file does not carry one.
	Threshold *float64

	Trace selection.Trace
}

// Load reads and decodes the trace file at path. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func Load(ctx context.Context, path string) (*File, error) {
	_, span := tracing.Start(ctx, "tracefile.Load")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var f *File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err = DecodeYAML(data)
	default:
		f, err = DecodeJSON(data)
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path

	span.SetAttributes(attribute.Int("iterations", len(f.Trace)))
	return f, nil
}

func recordError(idx int, format string, args ...any) error {
	return fmt.Errorf("record %d: %w: %s", idx, selection.ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func parseFeatureID(idx int, key string) (selection.FeatureID, error) {
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return 0, recordError(idx, "feature id %q is not an integer", key)
	}
	return selection.FeatureID(id), nil
}

func parseDirection(s string) (selection.Direction, error) {
	if s == "" {
		return selection.DirectionUnspecified, nil
	}
	return selection.ParseDirection(s)
}

// isList reports whether the document is a bare list of records.
func isList(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
