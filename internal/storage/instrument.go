package storage

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ventry/ventry/internal/models"
)

// Ensure InstrumentedStore implements Store
var _ Store = (*InstrumentedStore)(nil)

// InstrumentedStore decorates a Store with prometheus counters and
// latency histograms per operation. Semantics are unchanged.
type InstrumentedStore struct {
	next Store

	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Instrument wraps a Store, registering its metrics on the given
// registerer (pass prometheus.DefaultRegisterer outside tests).
func Instrument(next Store, reg prometheus.Registerer) *InstrumentedStore {
	factory := promauto.With(reg)
	return &InstrumentedStore{
		next: next,
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ventry_store_operations_total",
			Help: "Store operations by name and outcome.",
		}, []string{"op", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ventry_store_operation_duration_seconds",
			Help:    "Store operation latency by name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.ops.WithLabelValues(op, status).Inc()
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) CreateEvent(ctx context.Context, in *models.CreateEventInput) (*models.Event, error) {
	start := time.Now()
	event, err := s.next.CreateEvent(ctx, in)
	s.observe("create_event", start, err)
	return event, err
}

func (s *InstrumentedStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	start := time.Now()
	events, err := s.next.ListEvents(ctx)
	s.observe("list_events", start, err)
	return events, err
}

func (s *InstrumentedStore) GetEvent(ctx context.Context, eventID string) (*models.EventDetail, error) {
	start := time.Now()
	detail, err := s.next.GetEvent(ctx, eventID)
	s.observe("get_event", start, err)
	return detail, err
}

func (s *InstrumentedStore) UpdateEvent(ctx context.Context, eventID string, upd *models.EventUpdate) (bool, error) {
	start := time.Now()
	ok, err := s.next.UpdateEvent(ctx, eventID, upd)
	s.observe("update_event", start, err)
	return ok, err
}

func (s *InstrumentedStore) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	start := time.Now()
	ok, err := s.next.DeleteEvent(ctx, eventID)
	s.observe("delete_event", start, err)
	return ok, err
}

func (s *InstrumentedStore) AddAttendee(ctx context.Context, eventID string, in *models.AttendeeInput) (*models.Attendee, error) {
	start := time.Now()
	attendee, err := s.next.AddAttendee(ctx, eventID, in)
	s.observe("add_attendee", start, err)
	return attendee, err
}

func (s *InstrumentedStore) ListAttendees(ctx context.Context, eventID string) ([]*models.Attendee, error) {
	start := time.Now()
	attendees, err := s.next.ListAttendees(ctx, eventID)
	s.observe("list_attendees", start, err)
	return attendees, err
}

func (s *InstrumentedStore) ToggleCheckIn(ctx context.Context, attendeeID string) (bool, error) {
	start := time.Now()
	ok, err := s.next.ToggleCheckIn(ctx, attendeeID)
	s.observe("toggle_check_in", start, err)
	return ok, err
}

func (s *InstrumentedStore) DeleteAttendee(ctx context.Context, attendeeID string) (bool, error) {
	start := time.Now()
	ok, err := s.next.DeleteAttendee(ctx, attendeeID)
	s.observe("delete_attendee", start, err)
	return ok, err
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
