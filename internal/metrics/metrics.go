// Package metrics exposes prometheus instrumentation for the unit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Collectors are registered once on the default registry.
var (
	// EventsEnqueued counts events the controller put on the display queue.
	EventsEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefcase_events_enqueued_total",
		Help: "Total number of events placed on the display queue, labelled by kind.",
	}, []string{"kind"})

	// EventsRendered counts events the display task took off the queue.
	EventsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefcase_events_rendered_total",
		Help: "Total number of events taken off the queue and rendered, labelled by kind.",
	}, []string{"kind"})

	// TransitionsApplied counts fired rules of the transition table.
	TransitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefcase_transitions_applied_total",
		Help: "Total number of controller transitions applied, labelled by rule.",
	}, []string{"rule"})

	// InputsIgnored counts inputs that matched no rule.
	InputsIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "briefcase_inputs_ignored_total",
		Help: "Total number of inputs dropped because no guard held, labelled by trigger.",
	}, []string{"trigger"})

	// QueueDepth is the queue occupancy seen by the display task.
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "briefcase_queue_depth",
		Help: "Current number of events waiting for the display.",
	})

	// AlarmActive is 1 while the alarm is on.
	AlarmActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "briefcase_alarm_active",
		Help: "1 while the alarm is on, 0 otherwise.",
	})
)
