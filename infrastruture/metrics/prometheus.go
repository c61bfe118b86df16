// Package metrics exports service measurements to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/beka-birhanu/labyrinth-api/service/i"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "labyrinth"

var _ i.MetricsRecorder = &Recorder{}

// Recorder implements i.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	generationTotal    *prometheus.CounterVec
	generationDuration prometheus.Histogram
	pathTotal          *prometheus.CounterVec
	pathDuration       prometheus.Histogram
	pathLength         prometheus.Histogram
	renderBytes        prometheus.Histogram
	sessions           prometheus.Gauge
}

// NewRecorder registers the collectors with reg. Pass prometheus.DefaultRegisterer to
// expose them through promhttp.Handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		generationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mazes_generated_total",
			Help:      "Number of generated mazes by larger side",
		}, []string{"size"}),
		generationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "maze_generation_duration_seconds",
			Help:      "Time spent generating a maze",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		pathTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_queries_total",
			Help:      "Number of path queries by outcome",
		}, []string{"status"}),
		pathDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_query_duration_seconds",
			Help:      "Time spent extracting a path",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 12),
		}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length_cells",
			Help:      "Number of cells in returned paths",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		renderBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_size_bytes",
			Help:      "Size of written maze images",
			Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
		}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of maze sessions held in memory",
		}),
	}
}

// ObserveGeneration implements i.MetricsRecorder. Sizes are bucketed by their larger side
// rounded up to a multiple of ten to keep label cardinality small.
func (r *Recorder) ObserveGeneration(height, width int, took time.Duration) {
	side := max(height, width)
	bucket := ((side + 9) / 10) * 10
	r.generationTotal.WithLabelValues(strconv.Itoa(bucket)).Inc()
	r.generationDuration.Observe(took.Seconds())
}

// ObservePath implements i.MetricsRecorder.
func (r *Recorder) ObservePath(status string, length int, took time.Duration) {
	r.pathTotal.WithLabelValues(status).Inc()
	r.pathDuration.Observe(took.Seconds())
	if length > 0 {
		r.pathLength.Observe(float64(length))
	}
}

// ObserveRender implements i.MetricsRecorder.
func (r *Recorder) ObserveRender(bytes int64) {
	r.renderBytes.Observe(float64(bytes))
}

// SessionEvicted implements i.MetricsRecorder.
func (r *Recorder) SessionEvicted() {
	r.sessions.Dec()
}

// SetSessions implements i.MetricsRecorder.
func (r *Recorder) SetSessions(n int) {
	r.sessions.Set(float64(n))
}
