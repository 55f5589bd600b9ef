package models

import "strings"

// Attendee represents a person registered for an event.
type Attendee struct {
	// ID is the unique identifier for the attendee (UUID format).
	ID string

	// EventID is the owning event. An attendee belongs to exactly one
	// event for its entire lifetime and is never reassigned.
	EventID string

	// Name is the attendee's display name. Required, non-empty.
	Name string

	// Email is an optional contact address. Nil when absent.
	Email *string

	// Phone is an optional contact number. Nil when absent.
	Phone *string

	// CheckedIn reports whether the attendee has been checked in.
	// Defaults to false at creation; toggling is reversible.
	CheckedIn bool

	// CheckInTime is the RFC 3339 UTC timestamp of the most recent
	// check-in. Set when CheckedIn transitions to true, cleared back
	// to nil when it transitions to false.
	CheckInTime *string

	// CreatedAt is the RFC 3339 UTC timestamp of creation.
	CreatedAt string

	// UpdatedAt is rewritten on every mutation to the attendee.
	UpdatedAt string
}

// AttendeeInput carries the caller-supplied fields for a new attendee.
type AttendeeInput struct {
	Name  string  `validate:"required"`
	Email *string `validate:"-"`
	Phone *string `validate:"-"`
}

// Normalize trims surrounding whitespace so a blank name fails
// validation instead of being persisted as a padded or empty string.
func (in *AttendeeInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

// Validate reports a *ValidationError when the input is unusable.
// Callers should Normalize first.
func (in *AttendeeInput) Validate() error {
	return validateStruct(in)
}
