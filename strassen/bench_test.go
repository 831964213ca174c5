// SPDX-License-Identifier: MIT
package strassen_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/strassen"
)

// sink to defeat dead-code elimination
var sinkM *matrix.Dense

func BenchmarkMultiply(b *testing.B) {
	for _, n := range []int{64, 128, 256} {
		x := randomDense(b, n, 1337, 10)
		y := randomDense(b, n, 4242, 10)
		for _, leaf := range []int{1, 16, strassen.TunedLeafSize} {
			b.Run(fmt.Sprintf("n=%d/leaf=%d", n, leaf), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					m, err := strassen.Multiply(x, y, strassen.WithLeafSize(leaf))
					if err != nil {
						b.Fatal(err)
					}
					sinkM = m
				}
			})
		}
	}
}

func BenchmarkMultiplyParallel(b *testing.B) {
	const n = 256
	x := randomDense(b, n, 1, 10)
	y := randomDense(b, n, 2, 10)
	for _, depth := range []int{0, 1, 2} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				m, err := strassen.Multiply(x, y,
					strassen.WithLeafSize(strassen.TunedLeafSize),
					strassen.WithParallelDepth(depth))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}
