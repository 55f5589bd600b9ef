package sqlite

import (
	"context"
	"fmt"
)

// CounterDrift describes an event whose stored counters disagree with
// its attendee rows. The transaction discipline should make this
// impossible; the audit exists because counters have no self-healing
// path once they do drift (e.g. after a restored backup or an external
// edit to the database file).
type CounterDrift struct {
	EventID         string
	Title           string
	StoredAttendees int
	ActualAttendees int
	StoredCheckedIn int
	ActualCheckedIn int
}

// VerifyCounters recomputes both counters from attendee rows and
// returns the events whose stored values disagree.
func (s *SQLiteStore) VerifyCounters(ctx context.Context) ([]CounterDrift, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.title, e.attendees_count, e.checked_in_count,
		       COUNT(a.id), COALESCE(SUM(a.checked_in), 0)
		FROM events e
		LEFT JOIN attendees a ON a.event_id = e.id
		GROUP BY e.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query counter audit: %w", err)
	}
	defer rows.Close()

	var drifts []CounterDrift
	for rows.Next() {
		var d CounterDrift
		if err := rows.Scan(&d.EventID, &d.Title,
			&d.StoredAttendees, &d.StoredCheckedIn,
			&d.ActualAttendees, &d.ActualCheckedIn); err != nil {
			return nil, fmt.Errorf("failed to scan counter audit: %w", err)
		}
		if d.StoredAttendees != d.ActualAttendees || d.StoredCheckedIn != d.ActualCheckedIn {
			drifts = append(drifts, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counter audit: %w", err)
	}

	return drifts, nil
}

// RepairCounters rewrites drifted counters from the attendee rows in
// one transaction and returns the number of repaired events.
func (s *SQLiteStore) RepairCounters(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE events SET
		    attendees_count = (SELECT COUNT(*) FROM attendees WHERE event_id = events.id),
		    checked_in_count = (SELECT COUNT(*) FROM attendees WHERE event_id = events.id AND checked_in = 1),
		    updated_at = ?
		WHERE attendees_count <> (SELECT COUNT(*) FROM attendees WHERE event_id = events.id)
		   OR checked_in_count <> (SELECT COUNT(*) FROM attendees WHERE event_id = events.id AND checked_in = 1)`,
		nowUTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to repair counters: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(affected), nil
}
