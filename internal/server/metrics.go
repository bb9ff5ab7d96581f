package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	links  *prometheus.CounterVec
	errors *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		links: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dxlink",
			Name:      "links_generated_total",
			Help:      "Links generated, by kind.",
		}, []string{"kind"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dxlink",
			Name:      "errors_total",
			Help:      "Failed requests, by error code.",
		}, []string{"code"}),
	}
}
