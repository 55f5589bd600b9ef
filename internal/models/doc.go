// Package models defines the core domain models for Ventry.
//
// # Models
//
//   - Event: a scheduled event with denormalized attendee counters
//   - EventDetail: an Event together with its attendee list
//   - Attendee: a person registered for exactly one event
//
// # Design Principles
//
//  1. **Nullable means pointer**: optional columns (location, notes,
//     email, phone, check_in_time) are pointer fields; nil maps to SQL
//     NULL, never to an empty string.
//  2. **Derived counters are repository-owned**: AttendeesCount and
//     CheckedInCount are maintained by the storage layer inside the
//     same transaction as the attendee mutation that changes them.
//     Callers never write them.
//  3. **String-typed calendar fields**: Date is date-only (YYYY-MM-DD)
//     and Time is time-of-day (HH:MM:SS), stored separately to avoid
//     timezone ambiguity in a local-only app. Audit timestamps are
//     RFC 3339 UTC strings.
//  4. **Avoid circular references**: Attendee carries an EventID string
//     rather than a pointer back to its Event.
package models
