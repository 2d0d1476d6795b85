package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roombook_bookings_created_total",
		Help: "Number of successfully created bookings.",
	})

	bookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roombook_bookings_cancelled_total",
		Help: "Number of cancelled bookings.",
	})

	bookingsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roombook_bookings_rejected_total",
		Help: "Number of booking attempts rejected by the availability policy.",
	})
)
