package searcher

import (
	"sync/atomic"
	"time"
)

type SearchMetrics struct {
	StartTime     time.Time
	Duration      time.Duration
	Depth         int
	ParallelDepth int
	Nodes         int64 // Decision nodes visited
	Leaves        int64 // States evaluated
	IllegalMoves  int64
	Tasks         int64 // Moves evaluated on their own goroutine
}

type MetricsCollector interface {
	Start(depth, parallelDepth int)
	AddNode()
	AddLeaf()
	AddIllegal()
	AddTask()
	// Complete closes the search started by Start; err is its outcome
	Complete(err error) SearchMetrics
}

type metricsCollector struct {
	startTime     time.Time
	depth         int
	parallelDepth int
	nodes         atomic.Int64
	leaves        atomic.Int64
	illegal       atomic.Int64
	tasks         atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth, parallelDepth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.parallelDepth = parallelDepth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.illegal.Store(0)
	m.tasks.Store(0)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddIllegal() {
	m.illegal.Add(1)
}

func (m *metricsCollector) AddTask() {
	m.tasks.Add(1)
}

func (m *metricsCollector) Complete(error) SearchMetrics {
	return SearchMetrics{
		StartTime:     m.startTime,
		Duration:      time.Since(m.startTime),
		Depth:         m.depth,
		ParallelDepth: m.parallelDepth,
		Nodes:         m.nodes.Load(),
		Leaves:        m.leaves.Load(),
		IllegalMoves:  m.illegal.Load(),
		Tasks:         m.tasks.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(depth, parallelDepth int) {}
func (m *noMetricsCollector) AddNode()                       {}
func (m *noMetricsCollector) AddLeaf()                       {}
func (m *noMetricsCollector) AddIllegal()                    {}
func (m *noMetricsCollector) AddTask()                       {}
func (m *noMetricsCollector) Complete(error) SearchMetrics   { return SearchMetrics{} }
