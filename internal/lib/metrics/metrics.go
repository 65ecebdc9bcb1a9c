package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lab_booker"

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Bookings accepted by the lifecycle manager.",
	})

	BookingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Requests rejected because the window overlapped an active booking.",
	}, []string{"operation"})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Booking status changes by target status.",
	}, []string{"status"})

	NotificationsFannedOut = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_fanned_out_total",
		Help:      "Per-attendee notifications created.",
	})

	AttendeeResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attendee_responses_total",
		Help:      "Accept/reject responses recorded.",
	}, []string{"type"})

	LabPropagations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lab_propagated_notifications_total",
		Help:      "Notifications rewritten by a lab-wide confirm or cancel.",
	}, []string{"type"})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_total",
		Help:      "Notifications moved to reminder by the daily pass.",
	})

	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_delivery_failures_total",
		Help:      "Best-effort deliveries that the notifier could not complete.",
	})
)
