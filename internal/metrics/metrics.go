// Package metrics exposes prometheus collectors for the HTTP layer and the
// note/attachment domain counters, together with the /metrics handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all prometheus collectors used by the server. Every collector
// is registered on a private registry, so tests can create as many instances
// as they need without duplicate registration panics.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	notesCreatedTotal   prometheus.Counter
	notesDeletedTotal   prometheus.Counter
	attachmentsUploaded prometheus.Counter
	attachmentsDeleted  prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of handled HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		notesCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notes_created_total",
				Help: "Total number of notes created",
			},
		),
		notesDeletedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notes_deleted_total",
				Help: "Total number of notes deleted",
			},
		),
		attachmentsUploaded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "attachments_uploaded_total",
				Help: "Total number of attachment images uploaded",
			},
		),
		attachmentsDeleted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "attachments_deleted_total",
				Help: "Total number of attachment images deleted",
			},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.notesCreatedTotal,
		m.notesDeletedTotal,
		m.attachmentsUploaded,
		m.attachmentsDeleted,
	)

	return m
}

// Handler returns the prometheus scrape handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) NoteCreated()        { m.notesCreatedTotal.Inc() }
func (m *Metrics) NoteDeleted()        { m.notesDeletedTotal.Inc() }
func (m *Metrics) AttachmentUploaded() { m.attachmentsUploaded.Inc() }
func (m *Metrics) AttachmentDeleted()  { m.attachmentsDeleted.Inc() }
