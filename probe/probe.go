// SPDX-License-Identifier: MIT
// Package: probe
//
// probe.go - time and memory sampling around a closure.
//
// Sampling order: [GC] → memstats → rss → clock start → fn() → clock stop →
// memstats → rss. The GC before the first sample settles the heap so the
// delta reflects what fn left live; TotalAlloc and Mallocs are cumulative
// counters and are unaffected by collection.

package probe

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/elastic/gosigar"
)

// Measurement is the cost of one call.
type Measurement struct {
	Elapsed    time.Duration
	HeapDelta  int64  // HeapAlloc after - before; negative if fn freed memory
	TotalAlloc uint64 // bytes allocated by the call, freed or not
	Mallocs    uint64 // heap objects allocated by the call
	RSSDelta   int64  // resident set size after - before
	RSSValid   bool   // false when the OS does not report RSS
}

// Option configures Measure.
type Option func(*options)

type options struct {
	gc bool
}

// WithoutGC skips the collection before the first sample. Cheaper, but the
// heap delta then includes garbage from earlier work.
func WithoutGC() Option {
	return func(o *options) { o.gc = false }
}

type sample struct {
	heap, total, mallocs uint64
	rss                  uint64
	rssOK                bool
}

func take() sample {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := sample{heap: ms.HeapAlloc, total: ms.TotalAlloc, mallocs: ms.Mallocs}
	s.rss, s.rssOK = residentSetSize()

	return s
}

// residentSetSize reports this process's RSS in bytes.
func residentSetSize() (uint64, bool) {
	var pm gosigar.ProcMem
	if err := pm.Get(os.Getpid()); err != nil {
		return 0, false
	}

	return pm.Resident, true
}

// Measure invokes fn exactly once, synchronously, and reports its cost.
func Measure(fn func(), opts ...Option) Measurement {
	o := options{gc: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.gc {
		runtime.GC()
	}
	before := take()
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	after := take()

	return Measurement{
		Elapsed:    elapsed,
		HeapDelta:  int64(after.heap) - int64(before.heap),
		TotalAlloc: after.total - before.total,
		Mallocs:    after.mallocs - before.mallocs,
		RSSDelta:   int64(after.rss) - int64(before.rss),
		RSSValid:   before.rssOK && after.rssOK,
	}
}

// MeasureErr is Measure for a fallible fn; fn's error is returned as is.
func MeasureErr(fn func() error, opts ...Option) (Measurement, error) {
	var err error
	m := Measure(func() { err = fn() }, opts...)

	return m, err
}

// SystemMemory returns the total physical memory of the host in bytes.
func SystemMemory() (uint64, error) {
	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		return 0, err
	}

	return mem.Total, nil
}

// SignedBytes renders a byte delta with an explicit sign, e.g. "+1.5 MiB".
func SignedBytes(v int64) string {
	if v < 0 {
		return "-" + humanize.IBytes(uint64(-v))
	}

	return "+" + humanize.IBytes(uint64(v))
}

// RSS renders the resident set delta, or "n/a" when it was not sampled.
func (m Measurement) RSS() string {
	if !m.RSSValid {
		return "n/a"
	}

	return SignedBytes(m.RSSDelta)
}

func (m Measurement) String() string {
	return fmt.Sprintf("elapsed=%s heap=%s alloc=%s mallocs=%s rss=%s",
		m.Elapsed, SignedBytes(m.HeapDelta), humanize.IBytes(m.TotalAlloc),
		humanize.Comma(int64(m.Mallocs)), m.RSS())
}
