// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/ventry/ventry/internal/models"
)

// Store defines the interface for event and attendee storage.
// This abstraction allows swapping storage backends and test doubles
// without changing the consumers (async facade, CLI).
//
// Not-found is a benign outcome, not an error: composite reads return
// nil and mutations return false when no row matches.
type Store interface {
	// CreateEvent persists a new event with zeroed counters and
	// returns the constructed record without a re-read.
	CreateEvent(ctx context.Context, in *models.CreateEventInput) (*models.Event, error)

	// ListEvents returns all events ordered by date descending, then
	// time descending.
	ListEvents(ctx context.Context) ([]*models.Event, error)

	// GetEvent returns the event together with its attendee list, or
	// nil (and no error) when the event does not exist.
	GetEvent(ctx context.Context, eventID string) (*models.EventDetail, error)

	// UpdateEvent applies a partial update and reports whether a row
	// was affected. An empty patch succeeds without touching storage.
	UpdateEvent(ctx context.Context, eventID string, upd *models.EventUpdate) (bool, error)

	// DeleteEvent removes the event and, by cascade, all of its
	// attendees. Reports whether a row was removed.
	DeleteEvent(ctx context.Context, eventID string) (bool, error)

	// AddAttendee inserts an attendee and increments the owning
	// event's attendee counter in the same transaction.
	AddAttendee(ctx context.Context, eventID string, in *models.AttendeeInput) (*models.Attendee, error)

	// ListAttendees returns the event's attendees ordered by name,
	// case-insensitive ascending.
	ListAttendees(ctx context.Context, eventID string) ([]*models.Attendee, error)

	// ToggleCheckIn flips the attendee's checked-in state and adjusts
	// the owning event's checked-in counter in the same transaction.
	// Reports false when the attendee does not exist.
	ToggleCheckIn(ctx context.Context, attendeeID string) (bool, error)

	// DeleteAttendee removes the attendee and decrements the owning
	// event's counters in the same transaction. Reports false when
	// the attendee does not exist.
	DeleteAttendee(ctx context.Context, attendeeID string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
