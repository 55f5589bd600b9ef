package async

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ventry/ventry/internal/models"
)

// stubStore is an in-memory storage.Store for facade tests. Only the
// behavior under test matters; unused methods return zero values.
type stubStore struct {
	events []*models.Event
	log    []string

	// gate, when set, blocks ListEvents until released. Used to keep
	// the worker busy.
	gate chan struct{}

	failCreate error
}

func (s *stubStore) CreateEvent(ctx context.Context, in *models.CreateEventInput) (*models.Event, error) {
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	event := &models.Event{ID: fmt.Sprintf("event-%d", len(s.events)+1), Title: in.Title}
	s.events = append(s.events, event)
	s.log = append(s.log, "create:"+in.Title)
	return event, nil
}

func (s *stubStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.log = append(s.log, "list")
	return s.events, nil
}

func (s *stubStore) GetEvent(ctx context.Context, eventID string) (*models.EventDetail, error) {
	return nil, nil
}

func (s *stubStore) UpdateEvent(ctx context.Context, eventID string, upd *models.EventUpdate) (bool, error) {
	return false, nil
}

func (s *stubStore) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	return false, nil
}

func (s *stubStore) AddAttendee(ctx context.Context, eventID string, in *models.AttendeeInput) (*models.Attendee, error) {
	return nil, nil
}

func (s *stubStore) ListAttendees(ctx context.Context, eventID string) ([]*models.Attendee, error) {
	return nil, nil
}

func (s *stubStore) ToggleCheckIn(ctx context.Context, attendeeID string) (bool, error) {
	return false, nil
}

func (s *stubStore) DeleteAttendee(ctx context.Context, attendeeID string) (bool, error) {
	return false, nil
}

func (s *stubStore) Close() error { return nil }

func TestFutureResolvesWithResult(t *testing.T) {
	store := &stubStore{}
	client := NewClient(store)
	defer client.Close()

	event, err := client.CreateEvent(context.Background(), &models.CreateEventInput{Title: "Launch"}).Await(context.Background())
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if event.ID != "event-1" || event.Title != "Launch" {
		t.Errorf("Unexpected event: %+v", event)
	}
}

func TestFutureResolvesWithError(t *testing.T) {
	wantErr := errors.New("boom")
	client := NewClient(&stubStore{failCreate: wantErr})
	defer client.Close()

	_, err := client.CreateEvent(context.Background(), &models.CreateEventInput{Title: "x"}).Await(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("Await error = %v, want %v", err, wantErr)
	}
}

// Fire-and-await-later submissions must still execute in submission
// order, so a read submitted after writes observes them.
func TestSubmissionOrderPreserved(t *testing.T) {
	store := &stubStore{}
	client := NewClient(store)
	defer client.Close()

	ctx := context.Background()
	f1 := client.CreateEvent(ctx, &models.CreateEventInput{Title: "first"})
	f2 := client.CreateEvent(ctx, &models.CreateEventInput{Title: "second"})
	fList := client.ListEvents(ctx)

	events, err := fList.Await(ctx)
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("List after two creates saw %d events, want 2", len(events))
	}

	if _, err := f1.Await(ctx); err != nil {
		t.Errorf("first create failed: %v", err)
	}
	if _, err := f2.Await(ctx); err != nil {
		t.Errorf("second create failed: %v", err)
	}

	want := []string{"create:first", "create:second", "list"}
	if len(store.log) != len(want) {
		t.Fatalf("Execution log %v, want %v", store.log, want)
	}
	for i := range want {
		if store.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, store.log[i], want[i])
		}
	}
}

// Submission must not block even while the worker is busy.
func TestSubmitDoesNotBlock(t *testing.T) {
	gate := make(chan struct{})
	store := &stubStore{gate: gate}
	client := NewClient(store)
	defer client.Close()

	ctx := context.Background()
	blocked := client.ListEvents(ctx) // worker parks on the gate

	submitted := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			client.CreateEvent(ctx, &models.CreateEventInput{Title: fmt.Sprintf("e%d", i)})
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(2 * time.Second):
		t.Fatal("Submission blocked while worker was busy")
	}

	close(gate)
	if _, err := blocked.Await(ctx); err != nil {
		t.Fatalf("Await failed: %v", err)
	}
}

func TestAwaitHonorsContextCancellation(t *testing.T) {
	gate := make(chan struct{})
	store := &stubStore{gate: gate}
	client := NewClient(store)

	ctx := context.Background()
	blocked := client.ListEvents(ctx)
	pending := client.CreateEvent(ctx, &models.CreateEventInput{Title: "queued"})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := pending.Await(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Await error = %v, want context.Canceled", err)
	}

	// The task was only abandoned by the waiter, not cancelled: it
	// still runs once the worker gets to it.
	close(gate)
	if _, err := blocked.Await(ctx); err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if event, err := pending.Await(ctx); err != nil || event.Title != "queued" {
		t.Errorf("Abandoned task did not complete: %+v, %v", event, err)
	}

	client.Close()
	if len(store.events) != 1 {
		t.Errorf("Expected queued create to have run, store has %d events", len(store.events))
	}
}

func TestCloseDrainsQueueThenRejects(t *testing.T) {
	store := &stubStore{}
	client := NewClient(store)

	ctx := context.Background()
	var futures []*Future[*models.Event]
	for i := 0; i < 10; i++ {
		futures = append(futures, client.CreateEvent(ctx, &models.CreateEventInput{Title: fmt.Sprintf("e%d", i)}))
	}

	client.Close()

	for i, f := range futures {
		if _, err := f.Await(ctx); err != nil {
			t.Errorf("future %d failed after Close: %v", i, err)
		}
	}
	if len(store.events) != 10 {
		t.Errorf("Expected all queued tasks drained, got %d events", len(store.events))
	}

	_, err := client.ListEvents(ctx).Await(ctx)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Post-close submission error = %v, want ErrClosed", err)
	}
}
