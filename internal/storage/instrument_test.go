package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ventry/ventry/internal/models"
	"github.com/ventry/ventry/internal/storage"
	"github.com/ventry/ventry/internal/storage/sqlite"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			match := true
			for k, v := range labels {
				if got[k] != v {
					match = false
					break
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestInstrumentedStore(t *testing.T) {
	raw, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	reg := prometheus.NewRegistry()
	store := storage.Instrument(raw, reg)
	defer store.Close()

	ctx := context.Background()

	event, err := store.CreateEvent(ctx, &models.CreateEventInput{
		Title: "Observed", Date: "2025-06-01", Time: "18:00:00",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := store.ListEvents(ctx); err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if _, err := store.GetEvent(ctx, event.ID); err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}

	// A rejected input counts as an error outcome.
	if _, err := store.CreateEvent(ctx, &models.CreateEventInput{}); !models.IsValidation(err) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}

	const name = "ventry_store_operations_total"
	checks := []struct {
		labels map[string]string
		want   float64
	}{
		{map[string]string{"op": "create_event", "status": "ok"}, 1},
		{map[string]string{"op": "create_event", "status": "error"}, 1},
		{map[string]string{"op": "list_events", "status": "ok"}, 1},
		{map[string]string{"op": "get_event", "status": "ok"}, 1},
	}
	for _, c := range checks {
		if got := counterValue(t, reg, name, c.labels); got != c.want {
			t.Errorf("%v = %v, want %v", c.labels, got, c.want)
		}
	}

	// One series per op/status combination seen so far.
	n, err := testutil.GatherAndCount(reg, name)
	if err != nil {
		t.Fatalf("GatherAndCount failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Expected 4 operation series, got %d", n)
	}

	// Decoration must not change semantics: not-found is still benign.
	detail, err := store.GetEvent(ctx, "nonexistent-id")
	if err != nil || detail != nil {
		t.Errorf("GetEvent through decorator = %+v, %v; want nil, nil", detail, err)
	}
}
