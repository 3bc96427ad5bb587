package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration   time.Duration
	DepthLimit int // 0 means a full-depth search
	Nodes      int
	Probes     int
	Hits       int
	TableSize  int
}

// HitRate is the share of table probes that returned a usable entry.
func (s SearchMetric) HitRate() float64 {
	if s.Probes == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Probes)
}

type GameMetric struct {
	Winner    string // "X", "O" or "draw"
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Moves     int
}

type Collector interface {
	Start(depthLimit int)
	AddNode()
	AddProbe(hit bool)
	Complete(tableSize int) SearchMetric
}

type collector struct {
	depthLimit int
	startTime  time.Time
	nodes      atomic.Int32
	probes     atomic.Int32
	hits       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depthLimit int) {
	m.startTime = time.Now()
	m.depthLimit = depthLimit
	m.nodes.Store(0)
	m.probes.Store(0)
	m.hits.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddProbe(hit bool) {
	m.probes.Add(1)
	if hit {
		m.hits.Add(1)
	}
}

func (m *collector) Complete(tableSize int) SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		DepthLimit: m.depthLimit,
		Nodes:      int(m.nodes.Load()),
		Probes:     int(m.probes.Load()),
		Hits:       int(m.hits.Load()),
		TableSize:  tableSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depthLimit int)                {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddProbe(hit bool)                   {}
func (m *dummyCollector) Complete(tableSize int) SearchMetric { return SearchMetric{} }
