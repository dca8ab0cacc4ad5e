package rewards

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var redemptions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rewards_redemptions_total",
		Help: "Reward redemption attempts by outcome",
	},
	[]string{"outcome"},
)
