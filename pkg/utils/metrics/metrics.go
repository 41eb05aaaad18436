package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var greetingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "greeter_greetings_total",
		Help: "Number of greetings served by version tag",
	},
	[]string{"version"},
)

func IncreaseGreetings(version string) {
	greetingsTotal.WithLabelValues(version).Inc()
}
