package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry        *prometheus.Registry
	uploads         *prometheus.CounterVec
	reports         *prometheus.CounterVec
	analysisSeconds prometheus.Histogram
	rows            prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_uploads_total",
			Help: "Uploaded files by outcome.",
		}, []string{"outcome"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sales_reports_total",
			Help: "Generated PDF reports by outcome.",
		}, []string{"outcome"}),
		analysisSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sales_upload_analysis_seconds",
			Help:    "Time spent decoding and normalizing an upload.",
			Buckets: prometheus.DefBuckets,
		}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sales_upload_rows",
			Help:    "Rows per uploaded dataset.",
			Buckets: prometheus.ExponentialBuckets(10, 10, 6),
		}),
	}
	m.registry.MustRegister(m.uploads, m.reports, m.analysisSeconds, m.rows)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
