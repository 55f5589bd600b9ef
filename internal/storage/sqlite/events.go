package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ventry/ventry/internal/models"
)

const eventColumns = `id, title, date, time, location, notes, expected_attendees,
	attendees_count, checked_in_count, created_at, updated_at`

// CreateEvent persists a new event. The returned record is the one
// that was constructed and inserted, not a re-read.
func (s *SQLiteStore) CreateEvent(ctx context.Context, in *models.CreateEventInput) (*models.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := nowUTC()
	event := &models.Event{
		ID:                uuid.New().String(),
		Title:             in.Title,
		Date:              in.Date,
		Time:              in.Time,
		Location:          normalizeOptional(in.Location),
		Notes:             normalizeOptional(in.Notes),
		ExpectedAttendees: in.ExpectedAttendees,
		AttendeesCount:    0,
		CheckedInCount:    0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, title, date, time, location, notes, expected_attendees,
		 attendees_count, checked_in_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		event.ID, event.Title, event.Date, event.Time,
		event.Location, event.Notes, event.ExpectedAttendees,
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	return event, nil
}

// ListEvents returns all events, most imminent first (date descending,
// then time descending). No pagination: this is a local store with
// hundreds of events, not millions.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date DESC, time DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// GetEvent returns the event joined with its attendee list, or nil
// when no row matches. A failed attendee fetch degrades to an empty
// list rather than failing the whole read.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.EventDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID,
	)
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil // Event not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	attendees, err := s.ListAttendees(ctx, eventID)
	if err != nil {
		slog.Warn("returning event without attendees", "event_id", eventID, "error", err)
		attendees = nil
	}
	if attendees == nil {
		attendees = []*models.Attendee{}
	}

	return &models.EventDetail{Event: *event, Attendees: attendees}, nil
}

// UpdateEvent applies a partial update over only the supplied fields.
// It never touches id or created_at and always rewrites updated_at.
// Returns whether a row was affected; false signals not-found.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, eventID string, upd *models.EventUpdate) (bool, error) {
	if err := upd.Validate(); err != nil {
		return false, err
	}
	if upd.IsEmpty() {
		return true, nil // Nothing to do; storage untouched
	}

	var sets []string
	var args []any
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *upd.Date)
	}
	if upd.Time != nil {
		sets = append(sets, "time = ?")
		args = append(args, *upd.Time)
	}
	if upd.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, normalizeOptional(upd.Location))
	}
	if upd.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, normalizeOptional(upd.Notes))
	}
	if upd.ExpectedAttendees != nil {
		sets = append(sets, "expected_attendees = ?")
		args = append(args, *upd.ExpectedAttendees)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, nowUTC(), eventID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE events SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// DeleteEvent removes the event row. The cascading foreign key removes
// all owned attendees in the same statement's transaction.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one event row in eventColumns order.
func scanEvent(row scanner) (*models.Event, error) {
	event := &models.Event{}
	var (
		location, notes sql.NullString
		expected        sql.NullInt64
	)
	err := row.Scan(
		&event.ID, &event.Title, &event.Date, &event.Time,
		&location, &notes, &expected,
		&event.AttendeesCount, &event.CheckedInCount,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	if location.Valid {
		event.Location = &location.String
	}
	if notes.Valid {
		event.Notes = &notes.String
	}
	if expected.Valid {
		n := int(expected.Int64)
		event.ExpectedAttendees = &n
	}

	return event, nil
}
