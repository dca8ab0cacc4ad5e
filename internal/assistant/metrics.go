package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Total number of chat messages answered, by detected intent",
		},
		[]string{"intent"},
	)

	contextFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_context_fallbacks_total",
			Help: "Chat context sources that failed and were replaced by defaults",
		},
		[]string{"source"},
	)

	chatDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assistant_reply_duration_seconds",
			Help:    "Time spent building context and composing a chat reply",
			Buckets: prometheus.DefBuckets,
		},
	)
)
