package server

import (
	"github.com/mulewatch/forensics/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics bundles the Prometheus collectors instrumenting batch submissions.
type metrics struct {
	requestsTotal      *prometheus.CounterVec
	processingTimeSecs prometheus.Histogram
	fraudRingsDetected prometheus.Gauge
}

func newMetrics(registry prometheus.Registerer) *metrics {
	m := &metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forensics_http_requests_total",
			Help: "Total HTTP requests handled by the forensics API, by route and status.",
		}, []string{"route", "status"}),
		processingTimeSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forensics_processing_time_seconds",
			Help:    "Time spent running the detection pipeline per batch.",
			Buckets: prometheus.DefBuckets,
		}),
		fraudRingsDetected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "forensics_fraud_rings_detected",
			Help: "Number of fraud rings detected in the most recently processed batch.",
		}),
	}

	registry.MustRegister(m.requestsTotal, m.processingTimeSecs, m.fraudRingsDetected)
	return m
}

func (m *metrics) observeBatch(report *domain.Report) {
	if report == nil {
		return
	}
	m.processingTimeSecs.Observe(float64(report.Summary.ProcessingTimeSeconds))
	m.fraudRingsDetected.Set(float64(report.Summary.FraudRingsDetected))
}
