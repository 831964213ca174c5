// SPDX-License-Identifier: MIT

// Command matbench compares blocked and Strassen multiplication of random
// integer matrices, or multiplies two matrices read from files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := makeMatbenchCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
