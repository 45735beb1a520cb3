package tracefile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.tefs.dev/featsel/selection"
	"go.tefs.dev/featsel/testutil"
)

const envelopeJSON = `{
  "direction": "backward",
  "threshold": 0.05,
  "iterations": [
    {"TE": 0.01, "feature_scores": {"3": 0.4, "0": -0.2, "1": 0.1}},
    {"TE": 0.02, "feature_scores": {"3": 0.5, "1": 0.2}}
  ]
}`

const envelopeYAML = `
direction: backward
threshold: 0.05
iterations:
  - TE: 0.01
    feature_scores: {3: 0.4, 0: -0.2, 1: 0.1}
  - TE: 0.02
    feature_scores:
      3: 0.5
      1: 0.2
`

func wantEnvelope() selection.Trace {
	return selection.Trace{
		{Score: 0.01, FeatureScores: []selection.FeatureScore{{Feature: 3, Score: 0.4}, {Feature: 0, Score: -0.2}, {Feature: 1, Score: 0.1}}},
		{Score: 0.02, FeatureScores: []selection.FeatureScore{{Feature: 3, Score: 0.5}, {Feature: 1, Score: 0.2}}},
	}
}

func TestDecodeEnvelope(t *testing.T) {
	decoders := map[string]func([]byte) (*File, error){
		"json": DecodeJSON,
		"yaml": DecodeYAML,
	}
	docs := map[string]string{"json": envelopeJSON, "yaml": envelopeYAML}

	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			f, err := decode([]byte(docs[name]))
			require.NoError(t, err)

			assert.Equal(t, selection.Backward, f.Direction)
			require.NotNil(t, f.Threshold)
			assert.Equal(t, 0.05, *f.Threshold)
			assert.Equal(t, wantEnvelope(), f.Trace)
		})
	}
}

func TestDecodeBareList(t *testing.T) {
	f, err := DecodeJSON([]byte(`[{"TE": 1, "feature_scores": {}}, {"TE": 2.5, "feature_scores": {"7": -1}}]`))
	require.NoError(t, err)

	assert.Equal(t, selection.DirectionUnspecified, f.Direction)
	assert.Nil(t, f.Threshold)
	require.Len(t, f.Trace, 2)
	assert.Empty(t, f.Trace[0].FeatureScores)
	assert.Equal(t, 2.5, f.Trace[1].Score)
	assert.Equal(t, selection.Features{7}, f.Trace[1].Keys())

	y, err := DecodeYAML([]byte("- TE: 1\n  feature_scores: {}\n- TE: 2.5\n  feature_scores: {7: -1}\n"))
	require.NoError(t, err)
	assert.Equal(t, f.Trace, y.Trace)
}

func TestDecodeInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string score", `[{"TE": "high", "feature_scores": {"0": 1}}]`},
		{"missing score", `[{"feature_scores": {"0": 1}}]`},
		{"null score", `[{"TE": null, "feature_scores": {"0": 1}}]`},
		{"scores not a mapping", `[{"TE": 1, "feature_scores": [1, 2]}]`},
		{"missing scores", `[{"TE": 1}]`},
		{"non-integer feature", `[{"TE": 1, "feature_scores": {"a": 1}}]`},
		{"string feature score", `[{"TE": 1, "feature_scores": {"0": "x"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.doc))
			require.ErrorIs(t, err, selection.ErrInvalidRecord)
			assert.Contains(t, err.Error(), "record 0")
		})
	}

	yamlTests := []struct {
		name string
		doc  string
	}{
		{"string score", "- TE: high\n  feature_scores: {0: 1}\n"},
		{"quoted score", "- TE: \"1\"\n  feature_scores: {0: 1}\n"},
		{"scores not a mapping", "- TE: 1\n  feature_scores: [1, 2]\n"},
		{"non-integer feature", "- TE: 1\n  feature_scores: {a: 1}\n"},
	}

	for _, tt := range yamlTests {
		t.Run("yaml "+tt.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tt.doc))
			require.ErrorIs(t, err, selection.ErrInvalidRecord)
		})
	}
}

func TestDecodeInvalidDirection(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"direction": "sideways", "iterations": []}`))
	require.ErrorIs(t, err, selection.ErrInvalidArgument)

	_, err = DecodeYAML([]byte("direction: sideways\niterations: []\n"))
	require.ErrorIs(t, err, selection.ErrInvalidArgument)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	jsonPath := testutil.WriteFile(t, dir, "trace.json", envelopeJSON)
	yamlPath := testutil.WriteFile(t, dir, "trace.YML", envelopeYAML)

	for _, path := range []string{jsonPath, yamlPath} {
		f, err := Load(ctx, path)
		require.NoError(t, err, path)
		assert.Equal(t, path, f.Path)
		assert.Equal(t, wantEnvelope(), f.Trace)
	}

	_, err := Load(ctx, filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	bad := testutil.WriteFile(t, dir, "bad.json", `[{"TE": "x", "feature_scores": {}}]`)
	_, err = Load(ctx, bad)
	require.ErrorIs(t, err, selection.ErrInvalidRecord)
	assert.Contains(t, err.Error(), bad)
}

func TestLoadedTraceSelects(t *testing.T) {
	f, err := DecodeJSON([]byte(envelopeJSON))
	require.NoError(t, err)

	got, err := selection.ByThreshold(f.Trace, *f.Threshold, f.Direction)
	require.NoError(t, err)
	// every remaining feature scores positive at the second iteration
	assert.Equal(t, selection.Features{3, 1}, got)
}
