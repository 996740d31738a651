package searcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	metricsNamespace = "threes"
	metricsSubsystem = "search"
)

// prometheusCollector counts like the in-memory collector and publishes the
// totals of every finished search
type prometheusCollector struct {
	*metricsCollector
	searches prometheus.Counter
	failures prometheus.Counter
	nodes    prometheus.Counter
	leaves   prometheus.Counter
	illegal  prometheus.Counter
	tasks    prometheus.Counter
	duration prometheus.Histogram
}

// NewPrometheusCollector registers the search collectors on reg
func NewPrometheusCollector(reg prometheus.Registerer) (MetricsCollector, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		})
	}
	p := &prometheusCollector{
		metricsCollector: &metricsCollector{},
		searches:         counter("searches_total", "Searches that returned a choice"),
		failures:         counter("failures_total", "Searches that returned an error"),
		nodes:            counter("nodes_total", "Decision nodes visited"),
		leaves:           counter("leaves_total", "Leaf states evaluated"),
		illegal:          counter("illegal_moves_total", "Moves skipped because they change nothing"),
		tasks:            counter("tasks_total", "Moves evaluated on their own goroutine"),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{p.searches, p.failures, p.nodes, p.leaves, p.illegal, p.tasks, p.duration} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("registering search metrics: %w", err)
	}
	return p, nil
}

func (p *prometheusCollector) Complete(err error) SearchMetrics {
	metric := p.metricsCollector.Complete(err)
	if err != nil {
		p.failures.Inc()
	} else {
		p.searches.Inc()
	}
	p.nodes.Add(float64(metric.Nodes))
	p.leaves.Add(float64(metric.Leaves))
	p.illegal.Add(float64(metric.IllegalMoves))
	p.tasks.Add(float64(metric.Tasks))
	p.duration.Observe(metric.Duration.Seconds())
	return metric
}

// Totals reads the search metrics gathered from g, keyed by metric name.
// A histogram contributes name_count and name_sum.
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering search metrics: %w", err)
	}
	prefix := metricsNamespace + "_" + metricsSubsystem + "_"
	totals := make(map[string]float64)
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		for _, m := range family.GetMetric() {
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				totals[name] += m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				totals[name+"_count"] += float64(m.GetHistogram().GetSampleCount())
				totals[name+"_sum"] += m.GetHistogram().GetSampleSum()
			}
		}
	}
	return totals, nil
}
