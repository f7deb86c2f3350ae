package vector

import (
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/atomic"

	"github.com/memkit/memkit/pkg/rawbuf"
)

// logger receives growth events from every vector in the process. It
// is debug-level only and a no-op by default; hot non-growing paths
// never log.
var logger log.Logger = log.NewNopLogger()

// SetLogger routes growth and relocation events to l. Passing nil
// restores the no-op logger.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	logger = l
}

// Stats is a snapshot of the package-wide counters.
type Stats struct {
	// Allocations counts buffers allocated, and AllocatedBytes their
	// cumulative size. Neither is decremented on release.
	Allocations    uint64
	AllocatedBytes uint64
	// Relocations counts buffer growths; CopyRelocations counts
	// element ranges that had to be cloned rather than transferred
	// during one.
	Relocations     uint64
	CopyRelocations uint64
}

// The counters are atomic because different vectors may live on
// different goroutines, even though each vector is single-owner.
var stats struct {
	allocations     atomic.Uint64
	allocatedBytes  atomic.Uint64
	relocations     atomic.Uint64
	copyRelocations atomic.Uint64
}

// ReadStats returns a snapshot of the package-wide counters. The
// fields are read individually and may be mutually inconsistent under
// concurrent use.
func ReadStats() Stats {
	return Stats{
		Allocations:     stats.allocations.Load(),
		AllocatedBytes:  stats.allocatedBytes.Load(),
		Relocations:     stats.relocations.Load(),
		CopyRelocations: stats.copyRelocations.Load(),
	}
}

func noteAlloc[T any](capacity int) {
	if capacity == 0 {
		return
	}
	stats.allocations.Inc()
	stats.allocatedBytes.Add(uint64(capacity) * uint64(rawbuf.Sizeof[T]()))
}

func noteCopyRelocation(n int) {
	if n > 0 {
		stats.copyRelocations.Inc()
	}
}

func noteGrowth[T any](oldCap, newCap, size int) {
	stats.relocations.Inc()
	level.Debug(logger).Log(
		"msg", "vector grew",
		"old_cap", oldCap,
		"new_cap", newCap,
		"len", size,
		"bytes", humanize.Bytes(uint64(newCap)*uint64(rawbuf.Sizeof[T]())),
	)
}
