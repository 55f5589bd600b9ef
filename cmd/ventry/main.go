// Command ventry is an offline maintenance tool for the event
// database: list events or audit the denormalized counters.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ventry/ventry/internal/async"
	"github.com/ventry/ventry/internal/storage"
	"github.com/ventry/ventry/internal/storage/sqlite"
	"github.com/ventry/ventry/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/ventry.db")

	command := "list"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	ctx := context.Background()

	switch command {
	case "list":
		if err := runList(ctx, store); err != nil {
			slog.Error("list failed", "error", err)
			os.Exit(1)
		}
	case "audit":
		fix := len(os.Args) > 2 && os.Args[2] == "-fix"
		drifted, err := runAudit(ctx, store, fix)
		if err != nil {
			slog.Error("audit failed", "error", err)
			os.Exit(1)
		}
		if drifted && !fix {
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: ventry [list | audit [-fix]]")
		os.Exit(2)
	}
}

// runList prints every event with its counters, going through the same
// instrumented async facade the UI layer uses.
func runList(ctx context.Context, store *sqlite.SQLiteStore) error {
	client := async.NewClient(storage.Instrument(store, prometheus.DefaultRegisterer))
	defer client.Close()

	events, err := client.ListEvents(ctx).Await(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("no events")
		return nil
	}
	for _, event := range events {
		location := "-"
		if event.Location != nil {
			location = *event.Location
		}
		fmt.Printf("%s  %s %s  %-30s  %s  attendees=%d checked_in=%d\n",
			event.ID, event.Date, event.Time, event.Title, location,
			event.AttendeesCount, event.CheckedInCount)
	}
	return nil
}

// runAudit recomputes counters from attendee rows and reports drift.
func runAudit(ctx context.Context, store *sqlite.SQLiteStore, fix bool) (bool, error) {
	drifts, err := store.VerifyCounters(ctx)
	if err != nil {
		return false, err
	}

	if len(drifts) == 0 {
		fmt.Println("counters consistent")
		return false, nil
	}

	for _, d := range drifts {
		fmt.Printf("drift %s (%s): attendees %d->%d, checked_in %d->%d\n",
			d.EventID, d.Title,
			d.StoredAttendees, d.ActualAttendees,
			d.StoredCheckedIn, d.ActualCheckedIn)
	}

	if fix {
		repaired, err := store.RepairCounters(ctx)
		if err != nil {
			return true, err
		}
		slog.Info("counters repaired", "events", repaired)
	}

	return true, nil
}
