// SPDX-License-Identifier: MIT
//
// File: metrics.go
// Role: prometheus instruments and the otel tracer name.

package disjointset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const tracerName = "github.com/katalvlaran/dsforest/disjointset"

type metrics struct {
	forwarded     prometheus.Counter
	casRetries    prometheus.Counter
	pruned        prometheus.Counter
	accepted      *prometheus.CounterVec
	rankRaises    prometheus.Counter
	compressions  prometheus.Counter
	hookRounds    prometheus.Counter
	phaseDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		forwarded: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_messages_forwarded_total",
			Help: "Union and follow-up messages forwarded to another PE.",
		}),
		casRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_cas_retries_total",
			Help: "Compare-and-swap attempts lost to a concurrent writer.",
		}),
		pruned: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_candidates_pruned_total",
			Help: "Spanning edges discarded by the candidate reducer.",
		}),
		accepted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dsforest_tree_edges_total",
			Help: "Edges accepted into the spanning forest.",
		}, []string{"phase"}),
		rankRaises: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_rank_raises_total",
			Help: "Root ranks raised after an equal-rank link.",
		}),
		compressions: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_compressions_total",
			Help: "Vertices re-parented by path compression or pointer jumping.",
		}),
		hookRounds: f.NewCounter(prometheus.CounterOpts{
			Name: "dsforest_hook_rounds_total",
			Help: "Hook protocol rounds executed (counted once per PE).",
		}),
		phaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dsforest_phase_duration_seconds",
			Help:    "Wall time of each ProcessEdges phase on one PE.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"phase"}),
	}
}
