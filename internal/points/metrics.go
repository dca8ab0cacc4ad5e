package points

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pointsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_credited_total",
			Help: "Total number of points credited to users",
		},
	)

	pointsDebited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_debited_total",
			Help: "Total number of points spent by users",
		},
	)
)
