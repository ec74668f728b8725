package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pmkol/txlog/pkg/list"
)

// StatsSource is implemented by *list.List.
type StatsSource interface {
	Stats() list.Stats
}

type Collector struct {
	src StatsSource

	length    *prometheus.Desc
	slots     *prometheus.Desc
	freeSlots *prometheus.Desc
	appends   *prometheus.Desc
	pops      *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector exports the stats of src with a "log" label set to name.
// Stats are read at scrape time, so src must not be mutated concurrently
// with a scrape.
func NewCollector(name string, src StatsSource) *Collector {
	lb := prometheus.Labels{"log": name}
	return &Collector{
		src:       src,
		length:    prometheus.NewDesc("txlog_length", "The number of live entries", nil, lb),
		slots:     prometheus.NewDesc("txlog_slots", "The number of arena slots", nil, lb),
		freeSlots: prometheus.NewDesc("txlog_free_slots", "The number of arena slots waiting for reuse", nil, lb),
		appends:   prometheus.NewDesc("txlog_appends_total", "The total number of appended entries", nil, lb),
		pops:      prometheus.NewDesc("txlog_pops_total", "The total number of popped entries", nil, lb),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.length
	ch <- c.slots
	ch <- c.freeSlots
	ch <- c.appends
	ch <- c.pops
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	ch <- prometheus.MustNewConstMetric(c.length, prometheus.GaugeValue, float64(s.Length))
	ch <- prometheus.MustNewConstMetric(c.slots, prometheus.GaugeValue, float64(s.Slots))
	ch <- prometheus.MustNewConstMetric(c.freeSlots, prometheus.GaugeValue, float64(s.FreeSlots))
	ch <- prometheus.MustNewConstMetric(c.appends, prometheus.CounterValue, float64(s.Appends))
	ch <- prometheus.MustNewConstMetric(c.pops, prometheus.CounterValue, float64(s.Pops))
}
