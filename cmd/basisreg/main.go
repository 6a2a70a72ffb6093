// Command basisreg fits basis-expanded linear regressions to the benchmark
// dataset and estimates their out-of-sample error by LOOCV.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
