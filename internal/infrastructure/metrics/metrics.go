package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TubeTweet API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "uploads_total",
			Help:      "Total media uploads",
		},
		[]string{"content_type", "status"},
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "upload_bytes_total",
			Help:      "Total bytes uploaded",
		},
		[]string{"content_type"},
	)

	VideoViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "video_views_total",
			Help:      "Total recorded video views",
		},
	)

	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tubetweet",
			Subsystem: "api",
			Name:      "toggles_total",
			Help:      "Like and subscription toggle operations",
		},
		[]string{"kind", "state"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records a media upload
func RecordUpload(contentType, status string, bytes int64) {
	UploadsTotal.WithLabelValues(contentType, status).Inc()
	if status == "success" {
		UploadBytesTotal.WithLabelValues(contentType).Add(float64(bytes))
	}
}

// RecordView records a video view
func RecordView() {
	VideoViewsTotal.Inc()
}

// RecordToggle records a like or subscription toggle. state is "on" or "off".
func RecordToggle(kind, state string) {
	TogglesTotal.WithLabelValues(kind, state).Inc()
}
