package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountBackward(t *testing.T) {
	tr := Trace{
		rec(0, fs(0, 1), fs(1, 2), fs(2, 3)),
		rec(0, fs(0, 1), fs(1, 2)),
		rec(0, fs(0, 1)),
	}

	tests := []struct {
		n         int
		iteration int
		want      Features
	}{
		{3, 0, ids(0, 1, 2)},
		{2, 1, ids(0, 1)},
		{1, 2, ids(0)},
	}

	for _, tt := range tests {
		d, err := ExplainCount(tr, tt.n, Backward)
		require.NoError(t, err, "n=%d", tt.n)

		assert.Equal(t, tt.want, d.Features, "n=%d", tt.n)
		assert.Equal(t, tt.iteration, d.Iteration, "n=%d", tt.n)
		assert.Equal(t, ReasonCountMatched, d.Reason)
		assert.Equal(t, PolicyCount, d.Policy)
	}
}

func TestCountIgnoresScores(t *testing.T) {
	tr := Trace{
		rec(100, fs(0, 5), fs(1, 5)),
		rec(-100, fs(1, -5)),
	}
	got, err := ByCount(tr, 1, Backward)
	require.NoError(t, err)
	assert.Equal(t, ids(1), got)
}

func TestCountForward(t *testing.T) {
	t.Run("growing trace with explicit universe", func(t *testing.T) {
		tr := Trace{
			rec(0),
			rec(0, fs(0, 0.5)),
			rec(0, fs(0, 0.5), fs(1, 0.3)),
		}

		d, err := ExplainCount(tr, 1, Forward, WithUniverse(0, 1))
		require.NoError(t, err)

		assert.Equal(t, 1, d.Iteration)
		assert.Equal(t, ids(1), d.Features)
	})

	tr := Trace{
		rec(0, fs(0, 0.1), fs(1, 0.2), fs(2, 0.3)),
		rec(0, fs(1, 0.2), fs(2, 0.3)),
		rec(0, fs(2, 0.3)),
	}

	t.Run("one added", func(t *testing.T) {
		got, err := ByCount(tr, 1, Forward)
		require.NoError(t, err)
		assert.Equal(t, ids(0), got)
	})

	t.Run("two added", func(t *testing.T) {
		got, err := ByCount(tr, 2, Forward)
		require.NoError(t, err)
		assert.Equal(t, ids(0, 1), got)
	})

	t.Run("all features", func(t *testing.T) {
		d, err := ExplainCount(tr, 3, Forward)
		require.NoError(t, err)
		assert.Equal(t, ReasonCountFallback, d.Reason)
		assert.Equal(t, -1, d.Iteration)
		assert.Equal(t, ids(0, 1, 2), d.Features)
	})

	t.Run("all features with empty final record", func(t *testing.T) {
		withEmpty := append(cloneTrace(tr), rec(0))
		d, err := ExplainCount(withEmpty, 3, Forward)
		require.NoError(t, err)
		assert.Equal(t, ReasonCountMatched, d.Reason)
		assert.Equal(t, 3, d.Iteration)
		assert.Equal(t, ids(0, 1, 2), d.Features)
	})
}

func TestCountNotFound(t *testing.T) {
	t.Run("backward", func(t *testing.T) {
		tr := Trace{
			rec(0, fs(0, 1), fs(1, 2), fs(2, 3)),
			rec(0, fs(0, 1)),
		}
		_, err := ByCount(tr, 2, Backward)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("forward", func(t *testing.T) {
		tr := Trace{
			rec(0, fs(0, 1), fs(1, 2), fs(2, 3)),
		}
		_, err := ByCount(tr, 1, Forward)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCountBounds(t *testing.T) {
	tr := Trace{
		rec(0, fs(0, 1), fs(1, 2), fs(2, 3)),
		rec(0, fs(0, 1), fs(1, 2)),
	}

	for _, dir := range []Direction{Forward, Backward} {
		for _, n := range []int{-1, 0, 4} {
			_, err := ByCount(tr, n, dir)
			require.ErrorIs(t, err, ErrInvalidArgument, "n=%d dir=%s", n, dir)
			assert.Contains(t, err.Error(), "n must be between 1 and 3")
		}
	}
}

func TestCountInvalidInput(t *testing.T) {
	tr := backwardTrace()

	_, err := ByCount(tr, 1, DirectionUnspecified)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ByCount(tr, 1, Direction(42))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ByCount(Trace{}, 1, Backward)
	require.ErrorIs(t, err, ErrInvalidArgument)

	dup := Trace{
		rec(0, fs(0, 1), fs(1, 1)),
		rec(0, fs(1, 1), fs(1, 1)),
	}
	_, err = ByCount(dup, 1, Backward)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestCountDoesNotMutateTrace(t *testing.T) {
	for _, dir := range []Direction{Forward, Backward} {
		tr := forwardTrace()
		before := cloneTrace(tr)

		got, err := ByCount(tr, 2, dir)
		require.NoError(t, err)
		assert.Equal(t, before, tr)

		for i := range got {
			got[i] = -1
		}
		assert.Equal(t, before, tr)
	}
}
