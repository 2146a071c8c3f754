// Package metrics holds every Prometheus collector the service exports.
// Collectors register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "turf"

// SlotDaysGeneratedTotal counts dates whose 24 slots were materialised.
var SlotDaysGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "slot_days_generated_total",
	Help:      "Total number of dates whose hourly slots were generated.",
})

// DayMarkerLookupsTotal counts generated-day marker lookups by result (hit/miss/error).
var DayMarkerLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "day_marker_lookups_total",
		Help:      "Generated-day marker lookups, labelled by result.",
	},
	[]string{"result"},
)

// BookingAttemptsTotal counts per-slot booking attempts.
// Label result: "booked" or "skipped".
var BookingAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_attempts_total",
		Help:      "Per-slot booking attempts, labelled by result.",
	},
	[]string{"result"},
)

var BookingsCancelledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_cancelled_total",
		Help:      "Cancellation requests, labelled by result (cancelled/not_found).",
	},
	[]string{"result"},
)

var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Registration attempts, labelled by result and role.",
	},
	[]string{"result", "role"},
)

var NotificationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "notification_errors_total",
	Help:      "Booking notifications that could not be handed to the delivery channel.",
})

// HTTPRequestDuration measures request latency by method, route template and status.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
