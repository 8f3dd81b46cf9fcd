// Package observability exposes container activity as Prometheus metrics.
//
// Wire it through the container's hooks:
//
//	metrics := observability.New(prometheus.DefaultRegisterer)
//	d, err := datum.New(fields, datum.WithHooks(metrics.Hooks()))
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/datum"
)

// Metrics holds the Prometheus collectors for container activity.
type Metrics struct {
	mutations    prometheus.Counter
	lazyEvals    prometheus.Counter
	freezes      prometheus.Counter
	transactions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datum_mutations_total",
			Help: "Total number of successful field mutations",
		}),
		lazyEvals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datum_lazy_evaluations_total",
			Help: "Total number of lazy field evaluations",
		}),
		freezes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "datum_freezes_total",
			Help: "Total number of containers frozen",
		}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "datum_transactions_total",
			Help: "Total number of transaction scopes by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.mutations, m.lazyEvals, m.freezes, m.transactions)
	return m
}

// Hooks returns container hooks feeding these collectors. Combine with
// custom hooks manually if both are needed; datum accepts one Hooks value.
func (m *Metrics) Hooks() datum.Hooks {
	return datum.Hooks{
		OnMutation: func(field string, old, new any) {
			m.mutations.Inc()
		},
		OnLazyEval: func(field string) {
			m.lazyEvals.Inc()
		},
		OnFreeze: func() {
			m.freezes.Inc()
		},
		OnTransaction: func(committed bool) {
			if committed {
				m.transactions.WithLabelValues("commit").Inc()
			} else {
				m.transactions.WithLabelValues("rollback").Inc()
			}
		},
	}
}
