package dsbuf

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is anything that can report buffer accounting; both Buffer
// and SafeBuffer satisfy it. Collecting from a plain Buffer while another
// goroutine uses it is a data race.
type StatsSource interface {
	Stats() (Stats, error)
}

// Collector exports a buffer's accounting as Prometheus gauges.
type Collector struct {
	src StatsSource

	initialized   *prometheus.Desc
	capacity      *prometheus.Desc
	frontier      *prometheus.Desc
	allocated     *prometheus.Desc
	usage         *prometheus.Desc
	maxAllocation *prometheus.Desc
	descriptors   *prometheus.Desc
}

// NewCollector returns a Collector reading from src. constLabels are
// attached to every series, e.g. to tell several buffers apart.
func NewCollector(src StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName("dsbuf", "", name), help, labels, constLabels)
	}
	return &Collector{
		src:           src,
		initialized:   desc("initialized", "Whether the buffer is initialized."),
		capacity:      desc("capacity_bytes", "Size of the static arena."),
		frontier:      desc("frontier_bytes", "Bytes ever claimed from the arena."),
		allocated:     desc("allocated_bytes", "Bytes held by allocated blocks."),
		usage:         desc("usage_percent", "Allocated bytes as a whole percent of the arena."),
		maxAllocation: desc("max_new_allocation_bytes", "Largest request that can currently be placed."),
		descriptors:   desc("descriptors", "Descriptor slots by status.", "status"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.initialized
	ch <- c.capacity
	ch <- c.frontier
	ch <- c.allocated
	ch <- c.usage
	ch <- c.maxAllocation
	ch <- c.descriptors
}

// Collect implements prometheus.Collector. An uninitialized or corrupted
// buffer only reports dsbuf_initialized.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st, err := c.src.Stats()
	if err != nil {
		ch <- prometheus.MustNewConstMetric(c.initialized, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.initialized, prometheus.GaugeValue, 1)
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(st.Capacity))
	ch <- prometheus.MustNewConstMetric(c.frontier, prometheus.GaugeValue, float64(st.Frontier))
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.GaugeValue, float64(st.AllocatedBytes))
	ch <- prometheus.MustNewConstMetric(c.usage, prometheus.GaugeValue, float64(st.UsagePercent))
	ch <- prometheus.MustNewConstMetric(c.maxAllocation, prometheus.GaugeValue, float64(st.MaxNewAllocation))
	ch <- prometheus.MustNewConstMetric(c.descriptors, prometheus.GaugeValue, float64(st.UnusedDescriptors), StatusUnused.String())
	ch <- prometheus.MustNewConstMetric(c.descriptors, prometheus.GaugeValue, float64(st.FreeDescriptors), StatusFree.String())
	ch <- prometheus.MustNewConstMetric(c.descriptors, prometheus.GaugeValue, float64(st.AllocatedDescriptors), StatusAllocated.String())
}
