package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var analysesCompleted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "analyses_completed_total",
		Help: "Total number of skin and hair quiz analyses by outcome",
	},
	[]string{"type", "outcome"},
)
