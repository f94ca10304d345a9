// Package parallel provides the data-parallel helpers used by digitnet
// training loops.
//
// Results never depend on scheduling: workers write into per-index slots and
// callers reduce those slots in index order.
package parallel

import (
	"runtime"
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// Sequential is a Config that always runs on the calling goroutine.
var Sequential = Config{}

// DefaultConfig returns sensible defaults based on the logical core count
// reported by cpuid, falling back to runtime.NumCPU.
func DefaultConfig() Config {
	n := Workers()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4, // Per-sample backprop is coarse grained.
	}
}

// Workers returns the number of logical cores available for training.
func Workers() int {
	n := cpuid.CPU.LogicalCores
	if n <= 0 || n > runtime.NumCPU() {
		n = runtime.NumCPU()
	}
	return max(n, 1)
}

// CPUInfo describes the host CPU for startup logging.
type CPUInfo struct {
	Brand         string
	PhysicalCores int
	LogicalCores  int
	AVX2          bool
	AVX512        bool
}

// DetectCPU reports the host CPU features relevant to dense float math.
func DetectCPU() CPUInfo {
	return CPUInfo{
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  Workers(),
		AVX2:          cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3),
		AVX512:        cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ),
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForBatch is optimized for the outer*inner iteration pattern of convolution,
// for example filters*output rows.
func ForBatch(outer, inner int, f func(o, i int), cfg Config) {
	n := outer * inner
	For(n, func(k int) {
		f(k/inner, k%inner)
	}, cfg)
}

// Map evaluates f for every index in [0, n) and returns the results in index
// order, whatever order the workers ran in.
func Map[T any](n int, f func(i int) T, cfg Config) []T {
	out := make([]T, n)
	For(n, func(i int) {
		out[i] = f(i)
	}, cfg)
	return out
}
