package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tourops",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourops",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	spotSoldOut = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourops",
			Name:      "spot_sold_out_total",
			Help:      "Count of reservations that filled a spot.",
		},
	)

	spotDeparted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tourops",
			Name:      "spot_departed_total",
			Help:      "Count of spots transitioned to Departed by the sweep.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingCancelled, spotSoldOut, spotDeparted)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncSpotSoldOut() {
	spotSoldOut.Inc()
}

func AddSpotsDeparted(n int64) {
	if n > 0 {
		spotDeparted.Add(float64(n))
	}
}
