// SPDX-License-Identifier: MIT
package bench_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/katalvlaran/matmul/bench"
	"github.com/katalvlaran/matmul/config"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/stretchr/testify/require"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Size = 16
	cfg.BlockSize = 4
	cfg.Seed = 99
	cfg.Repeat = 2

	return cfg
}

func TestRunner_Run(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rep, err := bench.NewRunner(smallConfig(), logger).Run()
	require.NoError(t, err)
	require.True(t, rep.Verified)
	require.Equal(t, int64(99), rep.Seed)
	require.Len(t, rep.Results, 2)
	for _, res := range rep.Results {
		require.Len(t, res.Runs, 2)
		require.NotNil(t, res.Product)
	}
	require.True(t, matrix.Equal(rep.Results[0].Product, rep.Results[1].Product))
	require.Contains(t, logs.String(), "cross-check passed")
	require.Contains(t, logs.String(), "run complete")

	var out bytes.Buffer
	rep.Render(&out)
	for _, s := range []string{"algorithm", "elapsed", "blocked", "strassen", "n=16 seed=99", "verify=ok", "memory: operands=3.0 KiB"} {
		require.Contains(t, out.String(), s)
	}
	require.Equal(t, uint64(3*16*16*4), rep.OperandBytes)
	require.True(t, rep.GC)
}

func TestOperandBytes(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(12), bench.OperandBytes(1))
	require.Equal(t, uint64(3<<20), bench.OperandBytes(512))
}

func TestRunner_HostMemory(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rep, err := bench.NewRunner(smallConfig(), logger).Run()
	require.NoError(t, err)

	var out bytes.Buffer
	rep.Render(&out)
	if rep.HostMemory == 0 {
		require.Contains(t, logs.String(), "host memory unavailable")
		require.Contains(t, out.String(), "host=n/a")
		return
	}
	require.Contains(t, logs.String(), "memory estimate")
	require.NotContains(t, logs.String(), "exceeds host memory")
	require.NotContains(t, out.String(), "host=n/a")
}

func TestRunner_Variants(t *testing.T) {
	tests := map[string]func(*config.Config){
		"padded odd size": func(c *config.Config) { c.Size, c.Pad = 13, true },
		"workers":         func(c *config.Config) { c.Workers = 3 },
		"parallel leaf":   func(c *config.Config) { c.ParallelDepth, c.LeafSize = 1, 4 },
		"checked":         func(c *config.Config) { c.OverflowMode = "checked" },
		"no gc":           func(c *config.Config) { c.GC = false },
		"clock seed":      func(c *config.Config) { c.Seed = 0 },
	}
	for name, mutate := range tests {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := smallConfig()
			mutate(cfg)
			rep, err := bench.NewRunner(cfg, nil).Run()
			require.NoError(t, err)
			require.True(t, rep.Verified)
			require.NotZero(t, rep.Seed)
		})
	}
}

func TestRunner_NoVerify(t *testing.T) {
	cfg := smallConfig()
	cfg.Verify = false
	rep, err := bench.NewRunner(cfg, nil).Run()
	require.NoError(t, err)
	require.False(t, rep.Verified)

	var out bytes.Buffer
	rep.Render(&out)
	require.Contains(t, out.String(), "verify=skipped")
}

func TestRunner_Errors(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 12
	_, err := bench.NewRunner(cfg, nil).Run()
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = smallConfig()
	cfg.OverflowMode = "checked"
	cfg.Low, cfg.High = math.MaxInt32-10, math.MaxInt32
	_, err = bench.NewRunner(cfg, nil).Run()
	require.ErrorIs(t, err, matrix.ErrOverflow)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	x, err := matrix.NewDenseFrom([][]int32{{1, 2}, {3, 4}})
	require.NoError(t, err)
	y := x.Clone().(*matrix.Dense)
	require.NoError(t, bench.Compare(x, y))

	require.NoError(t, y.Set(1, 0, 7))
	err = bench.Compare(x, y)
	require.ErrorIs(t, err, bench.ErrMismatch)
	require.Contains(t, err.Error(), "C[1][0]")

	z, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, bench.Compare(x, z), bench.ErrMismatch)
}
