package mem

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports a ledger's counters as Prometheus gauges.
type Collector struct {
	ledger *Ledger

	tagged *prometheus.Desc
	total  *prometheus.Desc
}

// NewCollector creates a collector for l. A nil ledger means Default().
func NewCollector(l *Ledger, constLabels prometheus.Labels) *Collector {
	if l == nil {
		l = defaultLedger
	}
	return &Collector{
		ledger: l,
		tagged: prometheus.NewDesc(
			"strings_mem_tagged_bytes",
			"Bytes currently outstanding per memory tag.",
			[]string{"tag"},
			constLabels,
		),
		total: prometheus.NewDesc(
			"strings_mem_total_bytes",
			"Bytes currently outstanding across all memory tags.",
			nil,
			constLabels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.tagged
	ch <- c.total
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	u := c.ledger.Snapshot()
	for _, tag := range Tags() {
		ch <- prometheus.MustNewConstMetric(c.tagged, prometheus.GaugeValue, float64(u.Tagged[tag]), tag.String())
	}
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(u.Total))
}
