package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ventry/ventry/internal/models"
)

// AddAttendee inserts an attendee and increments the owning event's
// attendees_count in one transaction, so the counter can never drift
// from the rows it summarizes.
func (s *SQLiteStore) AddAttendee(ctx context.Context, eventID string, in *models.AttendeeInput) (*models.Attendee, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := nowUTC()
	attendee := &models.Attendee{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      in.Name,
		Email:     normalizeOptional(in.Email),
		Phone:     normalizeOptional(in.Phone),
		CheckedIn: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Check the event exists so a missing parent surfaces as a clean
	// domain error instead of a driver constraint violation.
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", eventID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check event existence: %w", err)
	}

	// Insert with the guaranteed column set plus whatever optional
	// columns this store's schema actually has.
	cols := []string{"id", "event_id", "name", "checked_in", "created_at", "updated_at"}
	args := []any{attendee.ID, attendee.EventID, attendee.Name, attendee.CheckedIn,
		attendee.CreatedAt, attendee.UpdatedAt}
	if s.caps.HasEmail {
		cols = append(cols, "email")
		args = append(args, attendee.Email)
	}
	if s.caps.HasPhone {
		cols = append(cols, "phone")
		args = append(args, attendee.Phone)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO attendees ("+strings.Join(cols, ", ")+") VALUES ("+placeholders(len(cols))+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attendee: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE events SET attendees_count = attendees_count + 1, updated_at = ? WHERE id = ?",
		now, eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update attendee count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Reflect what was actually persisted on a degraded schema.
	if !s.caps.HasEmail {
		attendee.Email = nil
	}
	if !s.caps.HasPhone {
		attendee.Phone = nil
	}

	return attendee, nil
}

// ListAttendees returns the event's attendees ordered by name,
// case-insensitive ascending.
func (s *SQLiteStore) ListAttendees(ctx context.Context, eventID string) ([]*models.Attendee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+s.attendeeColumns()+" FROM attendees WHERE event_id = ? ORDER BY name COLLATE NOCASE ASC",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}
	defer rows.Close()

	var attendees []*models.Attendee
	for rows.Next() {
		attendee, err := s.scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, attendee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendees: %w", err)
	}

	return attendees, nil
}

// ToggleCheckIn flips the attendee's checked-in state and adjusts the
// owning event's checked_in_count in one transaction. The toggle is
// reversible: checking out clears check_in_time back to NULL. Returns
// false when the attendee does not exist.
func (s *SQLiteStore) ToggleCheckIn(ctx context.Context, attendeeID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		eventID   string
		checkedIn bool
	)
	err = tx.QueryRowContext(ctx,
		"SELECT event_id, checked_in FROM attendees WHERE id = ?", attendeeID,
	).Scan(&eventID, &checkedIn)
	if err == sql.ErrNoRows {
		return false, nil // Attendee not found
	}
	if err != nil {
		return false, fmt.Errorf("failed to get attendee: %w", err)
	}

	now := nowUTC()
	newState := !checkedIn

	if s.caps.HasCheckInTime {
		var checkInTime any
		if newState {
			checkInTime = now
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE attendees SET checked_in = ?, check_in_time = ?, updated_at = ? WHERE id = ?",
			newState, checkInTime, now, attendeeID,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE attendees SET checked_in = ?, updated_at = ? WHERE id = ?",
			newState, now, attendeeID,
		)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update attendee: %w", err)
	}

	delta := 1
	if !newState {
		delta = -1
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE events SET checked_in_count = checked_in_count + ?, updated_at = ? WHERE id = ?",
		delta, now, eventID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update checked-in count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// DeleteAttendee removes the attendee and decrements the owning
// event's attendees_count, plus checked_in_count when the attendee was
// checked in, all in one transaction. Returns false when the attendee
// does not exist.
func (s *SQLiteStore) DeleteAttendee(ctx context.Context, attendeeID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		eventID   string
		checkedIn bool
	)
	err = tx.QueryRowContext(ctx,
		"SELECT event_id, checked_in FROM attendees WHERE id = ?", attendeeID,
	).Scan(&eventID, &checkedIn)
	if err == sql.ErrNoRows {
		return false, nil // Attendee not found
	}
	if err != nil {
		return false, fmt.Errorf("failed to get attendee: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendees WHERE id = ?", attendeeID); err != nil {
		return false, fmt.Errorf("failed to delete attendee: %w", err)
	}

	now := nowUTC()
	if checkedIn {
		_, err = tx.ExecContext(ctx,
			`UPDATE events SET attendees_count = attendees_count - 1,
			 checked_in_count = checked_in_count - 1, updated_at = ? WHERE id = ?`,
			now, eventID,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			"UPDATE events SET attendees_count = attendees_count - 1, updated_at = ? WHERE id = ?",
			now, eventID,
		)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update attendee count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// attendeeColumns returns the SELECT column list for this store's
// schema, guaranteed columns first.
func (s *SQLiteStore) attendeeColumns() string {
	cols := []string{"id", "event_id", "name", "checked_in", "created_at", "updated_at"}
	if s.caps.HasEmail {
		cols = append(cols, "email")
	}
	if s.caps.HasPhone {
		cols = append(cols, "phone")
	}
	if s.caps.HasCheckInTime {
		cols = append(cols, "check_in_time")
	}
	return strings.Join(cols, ", ")
}

// scanAttendee reads one attendee row in attendeeColumns order.
func (s *SQLiteStore) scanAttendee(row scanner) (*models.Attendee, error) {
	attendee := &models.Attendee{}
	var email, phone, checkInTime sql.NullString

	dest := []any{&attendee.ID, &attendee.EventID, &attendee.Name,
		&attendee.CheckedIn, &attendee.CreatedAt, &attendee.UpdatedAt}
	if s.caps.HasEmail {
		dest = append(dest, &email)
	}
	if s.caps.HasPhone {
		dest = append(dest, &phone)
	}
	if s.caps.HasCheckInTime {
		dest = append(dest, &checkInTime)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan attendee: %w", err)
	}

	if email.Valid {
		attendee.Email = &email.String
	}
	if phone.Valid {
		attendee.Phone = &phone.String
	}
	if checkInTime.Valid {
		attendee.CheckInTime = &checkInTime.String
	}

	return attendee, nil
}
