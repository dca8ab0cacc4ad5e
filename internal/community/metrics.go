package community

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "community_posts_created_total",
			Help: "Total number of community posts created",
		},
	)

	postsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "community_posts_rate_limited_total",
			Help: "Total number of posts rejected by the per-user rate limit",
		},
	)

	likesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "community_likes_toggled_total",
			Help: "Total number of like toggles by resulting action",
		},
		[]string{"action"},
	)
)
