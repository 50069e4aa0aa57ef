package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cotton_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cotton_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	ActiveAlerts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cotton_active_alerts",
		Help: "Number of alerts produced by the most recent notification scan",
	})

	BackupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cotton_backups_total",
		Help: "Backup attempts by outcome",
	}, []string{"status"})

	RestoredRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cotton_restored_records_total",
		Help: "Records inserted by restore operations",
	})
)
