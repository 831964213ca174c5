package blocked_test

import (
	"fmt"

	"github.com/katalvlaran/matmul/blocked"
	"github.com/katalvlaran/matmul/matrix"
)

// ExampleMultiply multiplies a 2×3 by a 3×2 matrix with 2×2 tiles; the
// last row and column tiles are clipped.
func ExampleMultiply() {
	a, _ := matrix.NewDenseFrom([][]int32{{1, 2, 3}, {4, 5, 6}})
	b, _ := matrix.NewDenseFrom([][]int32{{7, 8}, {9, 10}, {11, 12}})

	c, err := blocked.Multiply(a, b, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(c)

	// Output:
	// [58, 64]
	// [139, 154]
}
