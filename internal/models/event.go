package models

import "strings"

// Event represents a scheduled event stored on-device.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	// Generated by the repository at creation time, immutable.
	ID string

	// Title is the human-readable name for the event.
	Title string

	// Date is the calendar date of the event (YYYY-MM-DD).
	Date string

	// Time is the time of day of the event (HH:MM:SS).
	Time string

	// Location is an optional venue description. Nil when absent.
	Location *string

	// Notes is optional free-form text. Nil when absent.
	Notes *string

	// ExpectedAttendees is an optional planning estimate, distinct
	// from the actual registered count. Nil when absent.
	ExpectedAttendees *int

	// AttendeesCount is the number of attendee rows owned by this
	// event. Derived, repository-maintained.
	AttendeesCount int

	// CheckedInCount is the number of owned attendee rows with
	// CheckedIn set. Derived, repository-maintained.
	// Invariant: 0 <= CheckedInCount <= AttendeesCount.
	CheckedInCount int

	// CreatedAt is the RFC 3339 UTC timestamp of creation.
	CreatedAt string

	// UpdatedAt is rewritten on every mutation to the event or to any
	// of its attendees.
	UpdatedAt string
}

// EventDetail is an Event together with its attendee list, as returned
// by the composite GetEvent read.
type EventDetail struct {
	Event

	// Attendees is ordered by name, case-insensitive ascending.
	// Empty (not nil) when the event has no attendees or when the
	// attendee fetch degraded.
	Attendees []*Attendee
}

// CreateEventInput carries the caller-supplied fields for a new event.
// ID, timestamps and counters are assigned by the repository.
type CreateEventInput struct {
	Title             string  `validate:"required"`
	Date              string  `validate:"required,datetime=2006-01-02"`
	Time              string  `validate:"required,datetime=15:04:05"`
	Location          *string `validate:"-"`
	Notes             *string `validate:"-"`
	ExpectedAttendees *int    `validate:"omitempty,min=0"`
}

// Validate reports a *ValidationError when the input is unusable.
// A whitespace-only title counts as missing.
func (in *CreateEventInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "Title", Rule: "required"}
	}
	return validateStruct(in)
}

// EventUpdate is a patch over an existing event. Nil fields are left
// untouched. Supplying a pointer to an empty Location or Notes clears
// the column to NULL (optionals are never stored as empty strings).
type EventUpdate struct {
	Title             *string `validate:"omitempty,min=1"`
	Date              *string `validate:"omitempty,datetime=2006-01-02"`
	Time              *string `validate:"omitempty,datetime=15:04:05"`
	Location          *string `validate:"-"`
	Notes             *string `validate:"-"`
	ExpectedAttendees *int    `validate:"omitempty,min=0"`
}

// Validate reports a *ValidationError when the patch is unusable.
// Title may be changed but never cleared to blank.
func (u *EventUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return &ValidationError{Field: "Title", Rule: "required"}
	}
	return validateStruct(u)
}

// IsEmpty reports whether the patch supplies no fields at all.
func (u *EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Date == nil && u.Time == nil &&
		u.Location == nil && u.Notes == nil && u.ExpectedAttendees == nil
}
