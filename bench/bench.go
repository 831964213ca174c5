// SPDX-License-Identifier: MIT

// Package bench drives one comparison of the two multipliers: generate two
// random operands, time each algorithm with the probe, cross-check the
// products and render a report.
package bench

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/matmul/blocked"
	"github.com/katalvlaran/matmul/config"
	"github.com/katalvlaran/matmul/generator"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/probe"
	"github.com/katalvlaran/matmul/strassen"
	"github.com/katalvlaran/matmul/workerpool"
	"github.com/olekukonko/tablewriter"
)

// ErrMismatch is returned when the blocked and Strassen products differ.
var ErrMismatch = errors.New("bench: products differ")

// Algorithm names used in logs and the report.
const (
	AlgoBlocked  = "blocked"
	AlgoStrassen = "strassen"
)

// Result holds the measured runs of one algorithm.
type Result struct {
	Algorithm string
	Runs      []probe.Measurement
	Product   *matrix.Dense
}

// Best returns the fastest run.
func (r Result) Best() probe.Measurement {
	best := r.Runs[0]
	for _, m := range r.Runs[1:] {
		if m.Elapsed < best.Elapsed {
			best = m
		}
	}

	return best
}

// Report is the outcome of Runner.Run.
type Report struct {
	Size         int
	Seed         int64
	BlockSize    int
	LeafSize     int
	Overflow     matrix.Overflow
	GC           bool
	OperandBytes uint64 // A, B and C as n×n int32
	ArenaBytes   uint64 // Strassen scratch per sequential call
	HostMemory   uint64 // 0 when the OS does not report it
	Verified     bool
	Results      []Result
}

// Runner executes a comparison described by a Config.
type Runner struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRunner returns a Runner. A nil logger discards log output.
func NewRunner(cfg *config.Config, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Runner{cfg: cfg, log: log}
}

// Run generates the operands, measures both algorithms cfg.Repeat times and
// cross-checks the products when cfg.Verify is set.
// Errors: config.ErrInvalidConfig, the multipliers' errors, ErrMismatch.
func (r *Runner) Run() (*Report, error) {
	cfg := r.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r.log.Info("generating operands",
		slog.Int("size", cfg.Size),
		slog.Int("low", cfg.Low),
		slog.Int("high", cfg.High),
		slog.Int64("seed", seed))
	a, b, err := generator.Pair(cfg.Size, int32(cfg.Low), int32(cfg.High), generator.WithSeed(seed))
	if err != nil {
		return nil, errors.Wrap(err, "generating operands")
	}

	var pool *workerpool.Pool
	if cfg.Workers > 0 {
		pool = workerpool.New(cfg.Workers)
		defer pool.Close()
	}
	blockedOpts := []blocked.Option{
		blocked.WithOverflow(cfg.Overflow()),
		blocked.WithWorkers(pool),
	}
	strassenOpts := []strassen.Option{
		strassen.WithOverflow(cfg.Overflow()),
		strassen.WithLeafSize(cfg.LeafSize),
		strassen.WithParallelDepth(cfg.ParallelDepth),
	}
	if cfg.Pad {
		strassenOpts = append(strassenOpts, strassen.WithPadding())
	}

	elem := uint64(4)
	if cfg.Overflow() == matrix.Checked {
		elem = 8
	}
	rep := &Report{
		Size:         cfg.Size,
		Seed:         seed,
		BlockSize:    cfg.BlockSize,
		LeafSize:     cfg.LeafSize,
		Overflow:     cfg.Overflow(),
		GC:           cfg.GC,
		OperandBytes: OperandBytes(cfg.Size),
		ArenaBytes:   uint64(strassen.ArenaSize(matrix.NextPowerOfTwo(cfg.Size), cfg.LeafSize)) * elem,
	}
	r.checkHostMemory(rep)

	bl, err := r.measure(AlgoBlocked, func() (*matrix.Dense, error) {
		return blocked.Multiply(a, b, cfg.BlockSize, blockedOpts...)
	})
	if err != nil {
		return nil, err
	}
	st, err := r.measure(AlgoStrassen, func() (*matrix.Dense, error) {
		return strassen.Multiply(a, b, strassenOpts...)
	})
	if err != nil {
		return nil, err
	}
	rep.Results = []Result{bl, st}

	if cfg.Verify {
		if err := Compare(bl.Product, st.Product); err != nil {
			r.log.Error("cross-check failed", slog.Any("error", err))
			return rep, err
		}
		rep.Verified = true
		r.log.Info("cross-check passed")
	}

	return rep, nil
}

// OperandBytes returns the memory held by two n×n int32 operands and their
// product.
func OperandBytes(n int) uint64 {
	return 3 * uint64(n) * uint64(n) * 4
}

// checkHostMemory records the host total in rep and warns when the
// operands plus the Strassen arena would not fit in it.
func (r *Runner) checkHostMemory(rep *Report) {
	total, err := probe.SystemMemory()
	if err != nil {
		r.log.Warn("host memory unavailable", slog.Any("error", err))
		return
	}
	rep.HostMemory = total
	need := rep.OperandBytes + rep.ArenaBytes
	r.log.Debug("memory estimate",
		slog.String("operands", humanize.IBytes(rep.OperandBytes)),
		slog.String("arena", humanize.IBytes(rep.ArenaBytes)),
		slog.String("host", humanize.IBytes(total)))
	if need > total {
		r.log.Warn("estimated footprint exceeds host memory",
			slog.String("estimate", humanize.IBytes(need)),
			slog.String("host", humanize.IBytes(total)))
	}
}

func (r *Runner) measure(algo string, mul func() (*matrix.Dense, error)) (Result, error) {
	var opts []probe.Option
	if !r.cfg.GC {
		opts = append(opts, probe.WithoutGC())
	}

	res := Result{Algorithm: algo}
	for run := 0; run < r.cfg.Repeat; run++ {
		var c *matrix.Dense
		m, err := probe.MeasureErr(func() error {
			var err error
			c, err = mul()
			return err
		}, opts...)
		if err != nil {
			r.log.Error("multiplication failed", slog.String("algorithm", algo), slog.Any("error", err))
			return res, errors.Wrapf(err, "%s run %d", algo, run+1)
		}
		r.log.Debug("run complete",
			slog.String("algorithm", algo),
			slog.Int("run", run+1),
			slog.Duration("elapsed", m.Elapsed),
			slog.Uint64("allocated", m.TotalAlloc))
		res.Runs = append(res.Runs, m)
		res.Product = c
	}

	return res, nil
}

// Compare returns ErrMismatch naming the first differing cell.
func Compare(x, y *matrix.Dense) error {
	if x.Rows() != y.Rows() || x.Cols() != y.Cols() {
		return errors.Wrapf(ErrMismatch, "shapes %dx%d and %dx%d", x.Rows(), x.Cols(), y.Rows(), y.Cols())
	}
	xv, yv := x.RawData(), y.RawData()
	for idx := range xv {
		if xv[idx] != yv[idx] {
			return errors.Wrapf(ErrMismatch, "C[%d][%d]: %s=%d, %s=%d",
				idx/x.Cols(), idx%x.Cols(), AlgoBlocked, xv[idx], AlgoStrassen, yv[idx])
		}
	}

	return nil
}

// Render writes the report as a table followed by a summary line.
func (rep *Report) Render(w io.Writer) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"algorithm", "run", "elapsed", "heap Δ", "allocated", "mallocs", "rss Δ"})
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, res := range rep.Results {
		for i, m := range res.Runs {
			tbl.Append([]string{
				res.Algorithm,
				strconv.Itoa(i + 1),
				m.Elapsed.String(),
				probe.SignedBytes(m.HeapDelta),
				humanize.IBytes(m.TotalAlloc),
				humanize.Comma(int64(m.Mallocs)),
				m.RSS(),
			})
		}
	}
	tbl.Render()

	verified := "skipped"
	if rep.Verified {
		verified = "ok"
	}
	host := "n/a"
	if rep.HostMemory > 0 {
		host = humanize.IBytes(rep.HostMemory)
	}
	fmt.Fprintf(w, "n=%d seed=%d block=%d leaf=%d overflow=%s gc=%t verify=%s\n",
		rep.Size, rep.Seed, rep.BlockSize, rep.LeafSize, rep.Overflow, rep.GC, verified)
	fmt.Fprintf(w, "memory: operands=%s arena=%s host=%s\n",
		humanize.IBytes(rep.OperandBytes), humanize.IBytes(rep.ArenaBytes), host)
	if len(rep.Results) == 2 {
		b, s := rep.Results[0].Best().Elapsed, rep.Results[1].Best().Elapsed
		if s > 0 {
			fmt.Fprintf(w, "%s/%s best-time ratio: %.2f\n", AlgoBlocked, AlgoStrassen, float64(b)/float64(s))
		}
	}
}
