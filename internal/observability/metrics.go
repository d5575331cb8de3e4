package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JarAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tixjar_jar_assignments_total",
			Help: "Jar assignment attempts by result",
		},
		[]string{"result"},
	)

	JarReleases = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tixjar_jar_releases_total",
			Help: "Jar reservation releases",
		},
	)

	JarsReserved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tixjar_jars_reserved",
			Help: "Jars currently reserved",
		},
	)

	ReservationsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tixjar_reservations_expired_total",
			Help: "Jar reservations released by the sweep",
		},
	)

	OrdersExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tixjar_orders_expired_total",
			Help: "Orders removed by the sweep",
		},
	)

	ConfirmAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tixjar_payment_confirm_attempts_total",
			Help: "Payment confirmation attempts by result",
		},
		[]string{"result"},
	)

	InvoicesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tixjar_invoices_created_total",
			Help: "Merchant invoice creation attempts by result",
		},
		[]string{"result"},
	)

	WebhooksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tixjar_webhooks_received_total",
			Help: "Payment provider webhooks by status",
		},
		[]string{"status"},
	)

	TicketsIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tixjar_tickets_issued_total",
			Help: "QR tickets delivered to buyers",
		},
	)
)
