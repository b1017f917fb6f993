package service

import (
	"strconv"

	"github.com/edgeap/edgeap/manager/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "edgeap"

// MetricCollector exports request outcomes and the current tracker contents.
type MetricCollector struct {
	state    domain.ClusterState
	requests *prometheus.CounterVec

	nodesDesc    *prometheus.Desc
	servicesDesc *prometheus.Desc
	portsDesc    *prometheus.Desc
}

var _ prometheus.Collector = (*MetricCollector)(nil)

func NewMetricCollector(machineID string, state domain.ClusterState) *MetricCollector {
	constLabels := prometheus.Labels{"machine_id": machineID}
	return &MetricCollector{
		state: state,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricNamespace,
			Name:        "requests_total",
			Help:        "Deploy and teardown requests by result.",
			ConstLabels: constLabels,
		}, []string{"action", "success"}),
		nodesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "managed_nodes"),
			"Nodes tracked by the manager.", nil, constLabels),
		servicesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "live_services"),
			"Services running on a node.", []string{"node"}, constLabels),
		portsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricNamespace, "", "allocated_ports"),
			"Published ports reserved on a node.", []string{"node"}, constLabels),
	}
}

func (m *MetricCollector) ObserveRequest(action domain.EventAction, success bool) {
	m.requests.WithLabelValues(string(action), strconv.FormatBool(success)).Inc()
}

func (m *MetricCollector) Describe(ch chan<- *prometheus.Desc) {
	m.requests.Describe(ch)
	ch <- m.nodesDesc
	ch <- m.servicesDesc
	ch <- m.portsDesc
}

func (m *MetricCollector) Collect(ch chan<- prometheus.Metric) {
	m.requests.Collect(ch)
	snap := m.state.Snapshot()
	ch <- prometheus.MustNewConstMetric(m.nodesDesc, prometheus.GaugeValue, float64(len(snap.Nodes)))
	for _, node := range snap.Nodes {
		ch <- prometheus.MustNewConstMetric(m.servicesDesc, prometheus.GaugeValue, float64(len(node.Services)), node.Address)
		ch <- prometheus.MustNewConstMetric(m.portsDesc, prometheus.GaugeValue, float64(len(node.Ports)), node.Address)
	}
}
