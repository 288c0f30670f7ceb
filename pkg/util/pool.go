package util

import "runtime"

// OptimalPoolSize returns the pool size used for CPU-bound parallel work
// (parser pools, importer workers).
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32). Twice the core count keeps
// goroutines busy while CGO parse calls block; the floor and ceiling keep the
// size sane on very small and very large machines.
func OptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// PoolSizeWithOverride returns the override when positive, otherwise the
// optimal size. Used for testing and tuning.
func PoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return OptimalPoolSize()
}
