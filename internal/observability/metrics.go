package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "incident_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	// Row normalization.
	RowsRead           prometheus.Counter
	RowsAccepted       prometheus.Counter
	RowsRejected       *prometheus.CounterVec // labels: reason={coordinates,date,station}
	StationResolutions *prometheus.CounterVec // labels: method={empty,alias,fuzzy,literal}
	ResolverCache      *prometheus.CounterVec // labels: result={hit,miss}

	// Refresh cycle.
	Refreshes          *prometheus.CounterVec // labels: outcome={success,error}
	RefreshDuration    prometheus.Histogram
	RefreshInFlight    prometheus.Gauge
	SnapshotRecords    prometheus.Gauge
	LastSuccessSeconds prometheus.Gauge

	// Source fetch.
	SourceRequests      *prometheus.CounterVec // labels: outcome={success,error,retry}
	SourceFetchDuration prometheus.Histogram

	// Kafka sink.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Total data rows read from source exports.",
		}),
		RowsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_accepted_total",
			Help:      "Total rows that produced a normalized record.",
		}),
		RowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_rejected_total",
			Help:      "Rows dropped by validation gate.",
		}, []string{"reason"}),
		StationResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "station_resolutions_total",
			Help:      "Police station resolutions by method.",
		}, []string{"method"}),
		ResolverCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_cache_total",
			Help:      "Station resolver cache lookups by result.",
		}, []string{"result"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Completed refresh runs by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-publish cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RefreshInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_in_flight",
			Help:      "1 while a refresh is running, 0 otherwise.",
		}),
		SnapshotRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_records",
			Help:      "Number of records in the published snapshot.",
		}),
		LastSuccessSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful refresh.",
		}),
		SourceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Source CSV fetch attempts by outcome.",
		}, []string{"outcome"}),
		SourceFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Source CSV request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Total records written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Snapshot publishes that failed.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RowsRead,
		m.RowsAccepted,
		m.RowsRejected,
		m.StationResolutions,
		m.ResolverCache,
		m.Refreshes,
		m.RefreshDuration,
		m.RefreshInFlight,
		m.SnapshotRecords,
		m.LastSuccessSeconds,
		m.SourceRequests,
		m.SourceFetchDuration,
		m.RecordsPublished,
		m.PublishErrors,
	}
}
