// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the Prometheus instrumentation a UNICORN peer
// exposes: a constructor that builds a fixed set of collectors and
// registers them against a caller-supplied Registerer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Peer holds one peer's round-level instrumentation.
type Peer struct {
	CommitmentsReceived prometheus.Counter
	VdfResultsReceived  prometheus.Counter
	CommitRestarts      prometheus.Counter
	RoundsSucceeded     prometheus.Counter
	RoundsFailed        prometheus.Counter
	VdfDuration         prometheus.Histogram
}

// NewPeer constructs and registers a Peer metrics set under registerer.
// registerer may be nil, in which case metrics are created but never
// exposed — useful for tests that don't care about scraping.
func NewPeer(registerer prometheus.Registerer) (*Peer, error) {
	m := &Peer{
		CommitmentsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unicorn_commitments_received_total",
			Help: "Number of distinct seed commitments this peer has collected.",
		}),
		VdfResultsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unicorn_vdf_results_received_total",
			Help: "Number of distinct VDF results this peer has collected.",
		}),
		CommitRestarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unicorn_commit_restarts_total",
			Help: "Number of times this peer re-rolled the commit phase.",
		}),
		RoundsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unicorn_rounds_succeeded_total",
			Help: "Number of rounds this peer completed with enough valid VDF results.",
		}),
		RoundsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "unicorn_rounds_failed_total",
			Help: "Number of rounds this peer abandoned: commit timeout or insufficient VDF agreement.",
		}),
		VdfDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "unicorn_vdf_solve_seconds",
			Help:    "Wall-clock time spent evaluating the VDF.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	if registerer == nil {
		return m, nil
	}

	for _, c := range []prometheus.Collector{
		m.CommitmentsReceived,
		m.VdfResultsReceived,
		m.CommitRestarts,
		m.RoundsSucceeded,
		m.RoundsFailed,
		m.VdfDuration,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveVdfDuration records how long a VDF solve took.
func (p *Peer) ObserveVdfDuration(d time.Duration) {
	p.VdfDuration.Observe(d.Seconds())
}
