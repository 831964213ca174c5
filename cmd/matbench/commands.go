// SPDX-License-Identifier: MIT
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/matmul/bench"
	"github.com/katalvlaran/matmul/blocked"
	"github.com/katalvlaran/matmul/config"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/strassen"
	"github.com/katalvlaran/matmul/workerpool"
	"github.com/spf13/cobra"
)

func makeMatbenchCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "matbench [command] (flags)",
		Short: "matbench times blocked and Strassen integer matrix multiplication.",
		Long: `matbench generates two random square matrices, multiplies them with the
cache-blocked and the Strassen algorithm, checks that both products agree and
prints the time and memory each algorithm used.

Typical usage:
    matbench
        Run the demonstration with defaults (128×128, tiles of 16, values in [0, 10)).

    matbench run --size=512 --leaf-size=64 --repeat=3
        Compare larger operands with a tuned Strassen cutoff.

    matbench multiply a.txt b.txt --algo=strassen --pad
        Multiply two matrices stored as whitespace-separated rows.

Settings may also come from a YAML file (--config) or MATBENCH_* variables.
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBench,
	}
	config.RegisterFlags(command.PersistentFlags())

	command.AddCommand(makeRunCommand())
	command.AddCommand(makeMultiplyCommand())

	return command
}

func makeRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate operands, time both algorithms and cross-check the products",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
}

func makeMultiplyCommand() *cobra.Command {
	var algo string
	runCmdFunc := func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := readMatrix(args[0])
		if err != nil {
			return err
		}
		b, err := readMatrix(args[1])
		if err != nil {
			return err
		}

		c, err := multiply(cfg, algo, a, b)
		if err != nil {
			return err
		}
		log.Debug("product computed", slog.String("algorithm", algo),
			slog.Int("rows", c.Rows()), slog.Int("cols", c.Cols()))
		_, err = io.WriteString(cmd.OutOrStdout(), matrix.Format(c))

		return err
	}

	cmd := &cobra.Command{
		Use:   "multiply <a.txt> <b.txt>",
		Short: "Multiply two matrices read from files and print the product",
		Long: `Multiply two matrices read from files and print the product.

Each file holds one row per line with elements separated by whitespace.
Lines starting with # are ignored.`,
		Args: cobra.ExactArgs(2),
		RunE: runCmdFunc,
	}
	cmd.Flags().StringVar(&algo, "algo", bench.AlgoBlocked, "algorithm to use (blocked, strassen)")

	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rep, err := bench.NewRunner(cfg, log).Run()
	if rep != nil {
		rep.Render(cmd.OutOrStdout())
	}

	return err
}

// loadConfig resolves the configuration and builds the logger it asks for.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	return cfg, log, nil
}

func readMatrix(path string) (*matrix.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := matrix.Parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return m, nil
}

func multiply(cfg *config.Config, algo string, a, b *matrix.Dense) (*matrix.Dense, error) {
	if _, err := matrix.ParseOverflow(cfg.OverflowMode); err != nil {
		return nil, errors.Mark(err, config.ErrInvalidConfig)
	}

	switch algo {
	case bench.AlgoBlocked:
		var pool *workerpool.Pool
		if cfg.Workers > 0 {
			pool = workerpool.New(cfg.Workers)
			defer pool.Close()
		}
		if cfg.BlockSize < 1 {
			return nil, errors.Wrapf(config.ErrInvalidConfig, "block-size=%d", cfg.BlockSize)
		}

		return blocked.Multiply(a, b, cfg.BlockSize,
			blocked.WithOverflow(cfg.Overflow()), blocked.WithWorkers(pool))
	case bench.AlgoStrassen:
		if !matrix.IsPowerOfTwo(cfg.LeafSize) || cfg.ParallelDepth < 0 {
			return nil, errors.Wrapf(config.ErrInvalidConfig,
				"leaf-size=%d parallel-depth=%d", cfg.LeafSize, cfg.ParallelDepth)
		}
		opts := []strassen.Option{
			strassen.WithOverflow(cfg.Overflow()),
			strassen.WithLeafSize(cfg.LeafSize),
			strassen.WithParallelDepth(cfg.ParallelDepth),
		}
		if cfg.Pad {
			opts = append(opts, strassen.WithPadding())
		}

		return strassen.Multiply(a, b, opts...)
	default:
		return nil, errors.Newf("unknown algorithm %q (want %s or %s)", algo, bench.AlgoBlocked, bench.AlgoStrassen)
	}
}
