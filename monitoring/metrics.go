// Package monitoring exposes Prometheus metrics for the ticket lifecycle:
// seat assignments, check-ins, email deliveries and document rendering.
package monitoring

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

var (
	seatAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketdesk_seat_assignments_total",
			Help: "Seat assignment attempts by outcome",
		},
		[]string{"status"},
	)

	checkins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketdesk_checkins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"status"},
	)

	ticketEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticketdesk_ticket_emails_total",
			Help: "Ticket email deliveries by outcome",
		},
		[]string{"status"},
	)

	documentRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticketdesk_document_render_duration_seconds",
			Help:    "Time spent rendering a ticket document",
			Buckets: prometheus.DefBuckets,
		},
	)

	ticketsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ticketdesk_tickets",
			Help: "Current ticket count by status",
		},
		[]string{"status"},
	)
)

type Monitor struct {
	app core.App
}

// NewMonitor wires the metric set to the app. A nil app skips the periodic
// DB collector, which keeps the constructor usable from tests.
func NewMonitor(app core.App) *Monitor {
	m := &Monitor{app: app}
	if app != nil {
		go m.collect()
	}
	return m
}

func (m *Monitor) TrackSeatAssignment(status string) {
	seatAssignments.WithLabelValues(status).Inc()
}

func (m *Monitor) TrackCheckin(status string) {
	checkins.WithLabelValues(status).Inc()
}

func (m *Monitor) TrackTicketEmail(status string) {
	ticketEmails.WithLabelValues(status).Inc()
}

func (m *Monitor) ObserveRenderDuration(d time.Duration) {
	documentRenderDuration.Observe(d.Seconds())
}

// collect refreshes the per-status ticket gauge every 30s. It waits for the
// app to bootstrap before touching the DB.
func (m *Monitor) collect() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if !m.app.IsBootstrapped() {
			continue
		}

		counts := []struct {
			Status string `db:"status"`
			Total  int    `db:"total"`
		}{}

		err := m.app.DB().
			NewQuery("SELECT status, COUNT(*) AS total FROM tickets GROUP BY status").
			All(&counts)
		if err != nil {
			log.WithError(err).Warn("metrics: ticket count refresh failed")
			continue
		}

		for _, c := range counts {
			ticketsByStatus.WithLabelValues(c.Status).Set(float64(c.Total))
		}
	}
}
