package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matmul/matrix"
	"github.com/stretchr/testify/require"
)

func TestCheckedHelpers(t *testing.T) {
	t.Parallel()

	_, ok := matrix.AddInt64(math.MaxInt64, 1)
	require.False(t, ok)
	s, ok := matrix.AddInt64(-5, 3)
	require.True(t, ok)
	require.Equal(t, int64(-2), s)

	_, ok = matrix.MulInt64(math.MaxInt64/2+1, 2)
	require.False(t, ok)
	_, ok = matrix.MulInt64(-1, math.MinInt64)
	require.False(t, ok)
	p, ok := matrix.MulInt64(math.MaxInt32, math.MaxInt32)
	require.True(t, ok)
	require.Equal(t, int64(math.MaxInt32)*int64(math.MaxInt32), p)

	_, ok = matrix.NarrowInt32(math.MaxInt32 + 1)
	require.False(t, ok)
	v, ok := matrix.NarrowInt32(math.MinInt32)
	require.True(t, ok)
	require.Equal(t, int32(math.MinInt32), v)
}

func TestParseOverflow(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]matrix.Overflow{"": matrix.Wrap, "wrap": matrix.Wrap, "checked": matrix.Checked} {
		got, err := matrix.ParseOverflow(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
		if in != "" {
			require.Equal(t, in, got.String())
		}
	}
	_, err := matrix.ParseOverflow("saturate")
	require.Error(t, err)
}
