// SPDX-License-Identifier: MIT
package strassen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/strassen"
)

// TestDataDriven runs the golden scenarios under testdata/.
//
//	multiply [leaf=<k>] [parallel=<d>] [pad] [checked]
//	<A rows>
//	times
//	<B rows>
//
//	arena n=<n> leaf=<k>
func TestDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/strassen", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "multiply":
			var opts []strassen.Option
			if d.HasArg("leaf") {
				var leaf int
				d.ScanArgs(t, "leaf", &leaf)
				opts = append(opts, strassen.WithLeafSize(leaf))
			}
			if d.HasArg("parallel") {
				var depth int
				d.ScanArgs(t, "parallel", &depth)
				opts = append(opts, strassen.WithParallelDepth(depth))
			}
			if d.HasArg("pad") {
				opts = append(opts, strassen.WithPadding())
			}
			if d.HasArg("checked") {
				opts = append(opts, strassen.WithOverflow(matrix.Checked))
			}

			parts := strings.SplitN(d.Input, "\ntimes\n", 2)
			if len(parts) != 2 {
				d.Fatalf(t, "expected two operands separated by a 'times' line")
			}
			a, err := matrix.Parse(parts[0])
			if err != nil {
				d.Fatalf(t, "A: %v", err)
			}
			b, err := matrix.Parse(parts[1])
			if err != nil {
				d.Fatalf(t, "B: %v", err)
			}
			c, err := strassen.Multiply(a, b, opts...)
			if err != nil {
				return fmt.Sprintf("error: %v\n", err)
			}

			return matrix.Format(c)
		case "arena":
			var n, leaf int
			d.ScanArgs(t, "n", &n)
			d.ScanArgs(t, "leaf", &leaf)

			return fmt.Sprintf("%d\n", strassen.ArenaSize(n, leaf))
		default:
			d.Fatalf(t, "unknown command %q", d.Cmd)
		}

		return ""
	})
}
