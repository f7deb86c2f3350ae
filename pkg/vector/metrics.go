package vector

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the package-wide vector counters as prometheus
// metrics. Registering it (or not) is the caller's choice:
//
//	prometheus.MustRegister(vector.NewCollector())
type Collector struct {
	allocations     *prometheus.Desc
	allocatedBytes  *prometheus.Desc
	relocations     *prometheus.Desc
	copyRelocations *prometheus.Desc
}

func NewCollector() *Collector {
	return &Collector{
		allocations: prometheus.NewDesc(
			"memkit_vector_allocations_total",
			"Total number of element buffers allocated by vectors.",
			nil, nil,
		),
		allocatedBytes: prometheus.NewDesc(
			"memkit_vector_allocated_bytes_total",
			"Cumulative size of element buffers allocated by vectors.",
			nil, nil,
		),
		relocations: prometheus.NewDesc(
			"memkit_vector_relocations_total",
			"Total number of vector growths that relocated elements into a new buffer.",
			nil, nil,
		),
		copyRelocations: prometheus.NewDesc(
			"memkit_vector_copy_relocations_total",
			"Total number of relocated ranges that required cloning elements instead of transferring them.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocations
	ch <- c.allocatedBytes
	ch <- c.relocations
	ch <- c.copyRelocations
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := ReadStats()
	ch <- prometheus.MustNewConstMetric(c.allocations, prometheus.CounterValue, float64(s.Allocations))
	ch <- prometheus.MustNewConstMetric(c.allocatedBytes, prometheus.CounterValue, float64(s.AllocatedBytes))
	ch <- prometheus.MustNewConstMetric(c.relocations, prometheus.CounterValue, float64(s.Relocations))
	ch <- prometheus.MustNewConstMetric(c.copyRelocations, prometheus.CounterValue, float64(s.CopyRelocations))
}
