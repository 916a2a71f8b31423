// Package metrics exposes Prometheus instrumentation for the chat relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChatRequestsTotal counts chat function calls by outcome:
	// "ok", "method_not_allowed", "unauthorized", "rate_limited", "bad_request", "error".
	ChatRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatgate_chat_requests_total",
		Help: "Chat function requests by outcome",
	}, []string{"outcome"})

	// ReplyLatency records how long the responder took to answer.
	ReplyLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatgate_reply_latency_seconds",
		Help:    "Responder latency in seconds",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10},
	})

	// Logins counts identity provider callbacks by result: "ok" or "failed".
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatgate_logins_total",
		Help: "Identity provider callbacks by result",
	}, []string{"result"})

	// WidgetMessages counts browser widget sends by result: "sent" or "rejected".
	WidgetMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatgate_widget_messages_total",
		Help: "Messages sent from the browser widget",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		ChatRequestsTotal,
		ReplyLatency,
		Logins,
		WidgetMessages,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
