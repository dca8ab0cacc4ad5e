package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_scores",
			Help:    "Distribution of product match scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_recommendations_served_total",
			Help: "Total number of recommendation lists served",
		},
		[]string{"clean_only"},
	)

	productDetailViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_product_detail_views_total",
			Help: "Total number of scored product detail views",
		},
	)

	rankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_rank_duration_seconds",
			Help:    "Time spent fetching and ranking recommendations",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func recordScore(total int) {
	matchScores.Observe(float64(total))
}

func recordRecommendations(cleanOnly bool) {
	label := "false"
	if cleanOnly {
		label = "true"
	}
	recommendationsServed.WithLabelValues(label).Inc()
}

func recordRankDuration(d time.Duration) {
	rankDuration.Observe(d.Seconds())
}
