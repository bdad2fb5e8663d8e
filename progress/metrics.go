package progress

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

/*
Metrics is a Sink that exposes training progress as Prometheus metrics:
counters of created nodes and completed trees, and a gauge with the
estimated number of nodes of the trees being grown.
*/
type Metrics struct {
	nodes          *prometheus.CounterVec
	trees          prometheus.Counter
	estimatedNodes prometheus.Gauge
}

/*
NewMetrics returns a Metrics sink whose collectors are registered on the
given registerer, or an error if they cannot be registered.
*/
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forest",
			Name:      "nodes_created_total",
			Help:      "Number of tree nodes created, by tree.",
		}, []string{"tree"}),
		trees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forest",
			Name:      "trees_completed_total",
			Help:      "Number of trees fully grown.",
		}),
		estimatedNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forest",
			Name:      "estimated_nodes",
			Help:      "Estimated number of nodes of the trees started so far.",
		}),
	}
	for _, c := range []prometheus.Collector{m.nodes, m.trees, m.estimatedNodes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) TreeStarted(tree int, estimatedNodes int) {
	m.estimatedNodes.Add(float64(estimatedNodes))
}

func (m *Metrics) NodeCreated(tree int) {
	m.nodes.WithLabelValues(strconv.Itoa(tree)).Inc()
}

func (m *Metrics) TreeCompleted(tree int) {
	m.trees.Inc()
}

// Multi returns a Sink that forwards every event to all the given sinks.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

type multi []Sink

func (ms multi) TreeStarted(tree int, estimatedNodes int) {
	for _, s := range ms {
		s.TreeStarted(tree, estimatedNodes)
	}
}

func (ms multi) NodeCreated(tree int) {
	for _, s := range ms {
		s.NodeCreated(tree)
	}
}

func (ms multi) TreeCompleted(tree int) {
	for _, s := range ms {
		s.TreeCompleted(tree)
	}
}
