// SPDX-License-Identifier: MIT

// Package probe measures the wall-clock time and memory cost of running a
// closure once.
//
// Heap figures come from runtime.ReadMemStats sampled before and after the
// call; resident set size comes from the operating system through gosigar
// and is reported only where the platform supports it.
//
//	m := probe.Measure(func() { c, err = blocked.Multiply(a, b, 16) })
//	fmt.Println(m)
package probe
