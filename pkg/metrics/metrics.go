// Package metrics provides Prometheus metrics for the dataframe layer:
// load counts by source kind, copy-on-read counts, and connector fetch
// latencies. Metrics register automatically on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoadsTotal counts dataframe loads by source kind and outcome.
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corvus_loads_total",
			Help: "Total dataframe loads by source kind and outcome",
		},
		[]string{"source_kind", "status"},
	)

	// DataframeReads counts copy-on-read accesses to the owned table.
	DataframeReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "corvus_dataframe_reads_total",
			Help: "Total copy-on-read dataframe accesses",
		},
	)

	// ConnectorUnloads counts connector unload transitions, including the
	// automatic unload after a temporary load's single read.
	ConnectorUnloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "corvus_connector_unloads_total",
			Help: "Total connector unload transitions",
		},
	)

	// ConnectorFetchDuration tracks connector fetch latencies by connector
	// and operation (execute, head).
	ConnectorFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "corvus_connector_fetch_duration_seconds",
			Help:    "Connector fetch latency by connector and operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"connector", "operation"},
	)

	// HeadBuilds counts sample head computations by privacy mode.
	HeadBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corvus_head_builds_total",
			Help: "Total sample head computations by privacy mode",
		},
		[]string{"privacy"},
	)
)
