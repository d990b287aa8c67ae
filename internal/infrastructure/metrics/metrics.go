package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	AppRequestsTotal          = "app_requests_total"
	UserRegisteredTotal       = "user_registered_total"
	UserRegisterRejectedTotal = "user_register_rejected_total"
	EventsDroppedTotal        = "events_dropped_total"
)

func NewCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "userregistry",
			Name:      "general_counters",
		},
		[]string{"result"})
}
