package strassen_test

import (
	"fmt"

	"github.com/katalvlaran/matmul/matrix"
	"github.com/katalvlaran/matmul/strassen"
)

func ExampleMultiply() {
	a, _ := matrix.NewDenseFrom([][]int32{{1, 2}, {3, 4}})
	b, _ := matrix.NewDenseFrom([][]int32{{5, 6}, {7, 8}})

	c, err := strassen.Multiply(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(c)

	// Output:
	// [19, 22]
	// [43, 50]
}

// ExampleWithPadding multiplies 3×3 operands by padding them to 4×4.
func ExampleWithPadding() {
	a, _ := matrix.NewDenseFrom([][]int32{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}})
	b, _ := matrix.NewDenseFrom([][]int32{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})

	if _, err := strassen.Multiply(a, b); err != nil {
		fmt.Println("without padding:", matrix.ErrInvalidShape.Error())
	}
	c, _ := strassen.Multiply(a, b, strassen.WithPadding())
	fmt.Print(matrix.Format(c))

	// Output:
	// without padding: matrix: invalid shape
	// 1 1 1
	// 2 2 2
	// 3 3 3
}
