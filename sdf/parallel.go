package sdf

import "runtime"

// numWorkers returns the number of goroutines data-parallel SDF
// evaluation should fan out across.
func numWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
