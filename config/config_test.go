// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/matmul/config"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.Equal(t, 128, cfg.Size)
	require.Equal(t, 16, cfg.BlockSize)
	require.Equal(t, 0, cfg.Low)
	require.Equal(t, 10, cfg.High)
	require.Equal(t, 1, cfg.LeafSize)
	require.True(t, cfg.Verify)
	require.Equal(t, "wrap", cfg.OverflowMode)
	require.Equal(t, 1, cfg.Repeat)
	require.True(t, cfg.GC)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
	require.Equal(t, matrix.Wrap, cfg.Overflow())
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "size: 64\nblock_size: 8\nhigh: 100\noverflow: checked\n")
	t.Setenv("MATBENCH_CONFIG", path)
	t.Setenv("MATBENCH_BLOCK_SIZE", "4")
	t.Setenv("MATBENCH_HIGH", "50")

	cfg, err := config.Load(newFlags(t, "--high=20", "--seed=7"))
	require.NoError(t, err)
	require.Equal(t, path, cfg.File)
	require.Equal(t, 64, cfg.Size)       // file
	require.Equal(t, 4, cfg.BlockSize)   // env over file
	require.Equal(t, 20, cfg.High)       // flag over env
	require.Equal(t, int64(7), cfg.Seed) // flag
	require.Equal(t, 1, cfg.LeafSize)    // default
	require.Equal(t, "checked", cfg.OverflowMode)
	require.Equal(t, matrix.Checked, cfg.Overflow())
}

func TestLoad_GC(t *testing.T) {
	t.Setenv("MATBENCH_CONFIG", writeFile(t, "gc: false\n"))
	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.False(t, cfg.GC)

	cfg, err = config.Load(newFlags(t, "--gc=true"))
	require.NoError(t, err)
	require.True(t, cfg.GC)
}

func TestLoad_ConfigFlagBeatsEnv(t *testing.T) {
	envPath := writeFile(t, "size: 8\n")
	flagPath := writeFile(t, "size: 32\n")
	t.Setenv("MATBENCH_CONFIG", envPath)

	cfg, err := config.Load(newFlags(t, "--config", flagPath))
	require.NoError(t, err)
	require.Equal(t, 32, cfg.Size)
}

func TestLoad_NilFlagSetAndEmptyFile(t *testing.T) {
	t.Setenv("MATBENCH_CONFIG", writeFile(t, ""))
	t.Setenv("MATBENCH_VERIFY", "false")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.False(t, cfg.Verify)
	require.Equal(t, 128, cfg.Size)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown yaml key", func(t *testing.T) {
		t.Setenv("MATBENCH_CONFIG", writeFile(t, "sise: 3\n"))
		_, err := config.Load(nil)
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("MATBENCH_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := config.Load(nil)
		require.Error(t, err)
	})
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("MATBENCH_SIZE", "big")
		_, err := config.Load(nil)
		require.ErrorContains(t, err, "Size")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults", func(*config.Config) {}, true},
		{"zero size", func(c *config.Config) { c.Size = 0 }, false},
		{"zero block", func(c *config.Config) { c.BlockSize = 0 }, false},
		{"empty range", func(c *config.Config) { c.Low, c.High = 5, 5 }, false},
		{"range beyond int32", func(c *config.Config) { c.High = 1 << 40 }, false},
		{"leaf not power of two", func(c *config.Config) { c.LeafSize = 6 }, false},
		{"odd size", func(c *config.Config) { c.Size = 100 }, false},
		{"odd size padded", func(c *config.Config) { c.Size, c.Pad = 100, true }, true},
		{"negative workers", func(c *config.Config) { c.Workers = -1 }, false},
		{"negative depth", func(c *config.Config) { c.ParallelDepth = -2 }, false},
		{"no repeats", func(c *config.Config) { c.Repeat = 0 }, false},
		{"bad overflow", func(c *config.Config) { c.OverflowMode = "saturate" }, false},
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }, false},
		{"debug level", func(c *config.Config) { c.LogLevel = "debug" }, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
