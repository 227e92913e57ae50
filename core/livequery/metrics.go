package livequery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_core_livequery_refresh_total",
		Help: "Number of live query refreshes",
	}, []string{"query"})

	refreshErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_core_livequery_refresh_errors_total",
		Help: "Number of live query refreshes that failed",
	}, []string{"query"})

	changesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_core_livequery_changes_total",
		Help: "Records changed by live query refreshes, by kind",
	}, []string{"query", "kind"})
)

func observeChanges(name string, added, updated, deleted int) {
	changesTotal.WithLabelValues(name, "added").Add(float64(added))
	changesTotal.WithLabelValues(name, "updated").Add(float64(updated))
	changesTotal.WithLabelValues(name, "deleted").Add(float64(deleted))
}
