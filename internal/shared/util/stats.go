package util

import "runtime"

// RuntimeStats is a snapshot logged after an analysis run.
type RuntimeStats struct {
	HeapAllocMB uint64
	NumGC       uint32
	Goroutines  int
}

func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		HeapAllocMB: m.Alloc / 1024 / 1024,
		NumGC:       m.NumGC,
		Goroutines:  runtime.NumGoroutine(),
	}
}
