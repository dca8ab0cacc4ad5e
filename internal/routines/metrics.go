package routines

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	routinesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routines_created_total",
			Help: "Total number of routines logged",
		},
		[]string{"type"},
	)

	daysCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routines_days_completed_total",
			Help: "Total number of routine days completed",
		},
	)

	milestonesReached = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routines_streak_milestones_total",
			Help: "Streak milestones reached",
		},
		[]string{"days"},
	)

	remindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "routines_reminders_sent_total",
			Help: "Total number of daily routine reminders sent",
		},
	)
)
