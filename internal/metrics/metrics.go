// Package metrics publishes the probe's measurement to a Prometheus
// Pushgateway. Publishing is strictly best-effort: the check result and
// exit code never depend on the metrics sink being up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "check_rt"

// Publisher bundles the probe gauges and the pusher that delivers them.
type Publisher struct {
	matchingTickets prometheus.Gauge
	checkSeverity   prometheus.Gauge
	pusher          *push.Pusher
}

// NewPublisher builds a Publisher targeting the given Pushgateway base
// URL, grouped by job and instance.
func NewPublisher(gatewayURL, instance string) *Publisher {
	p := &Publisher{
		matchingTickets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rt_matching_tickets",
			Help: "Number of RT tickets matching the probe query.",
		}),
		checkSeverity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rt_check_severity",
			Help: "Final probe severity (0=OK, 1=WARNING, 2=CRITICAL, 3=UNKNOWN).",
		}),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(p.matchingTickets, p.checkSeverity)

	p.pusher = push.New(gatewayURL, jobName).
		Gatherer(registry).
		Grouping("instance", instance)

	return p
}

// Publish records the measurement and pushes it, replacing the previous
// group for this job/instance.
func (p *Publisher) Publish(count int, severity int) error {
	p.matchingTickets.Set(float64(count))
	p.checkSeverity.Set(float64(severity))

	if err := p.pusher.Push(); err != nil {
		return fmt.Errorf("metrics: push failed: %w", err)
	}
	return nil
}
