package render

import "github.com/zeromicro/go-zero/core/metric"

var (
	cardsRendered = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "render",
		Name:      "cards_rendered_total",
		Help:      "Total cards rendered successfully",
		Labels:    []string{"style"},
	})

	cardsFailed = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "render",
		Name:      "cards_failed_total",
		Help:      "Total cards failed permanently",
		Labels:    []string{"style", "reason"},
	})

	cardsRetried = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "render",
		Name:      "cards_retried_total",
		Help:      "Total card render retries",
		Labels:    []string{"style"},
	})

	cacheHits = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "render",
		Name:      "cache_hits_total",
		Help:      "Total renders served from already rendered files",
		Labels:    []string{"style"},
	})

	renderDuration = metric.NewHistogramVec(&metric.HistogramVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "render",
		Name:      "duration_seconds",
		Help:      "Card render duration in seconds",
		Labels:    []string{"style"},
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})

	queueDepth = metric.NewGaugeVec(&metric.GaugeVecOpts{
		Namespace: "plat_titlecard",
		Subsystem: "queue",
		Name:      "depth",
		Help:      "Current queue depth by status",
		Labels:    []string{"status"},
	})
)
