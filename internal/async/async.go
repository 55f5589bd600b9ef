// Package async wraps the synchronous storage layer in a non-blocking
// facade for UI-style consumers.
//
// Every storage.Store method has a counterpart returning a *Future.
// Submission never blocks: tasks go onto an unbounded queue drained by
// a single worker goroutine, so storage work is serialized in
// submission order and each transaction runs to completion once
// started. Calls awaited sequentially observe read-your-writes;
// futures awaited out of order (or never) have no relative ordering
// guarantee beyond per-transaction atomicity.
package async

import (
	"context"
	"errors"
	"sync"

	"github.com/ventry/ventry/internal/models"
	"github.com/ventry/ventry/internal/storage"
)

// ErrClosed is returned by futures submitted after Close.
var ErrClosed = errors.New("async: client closed")

// Future holds the eventual result of a submitted storage operation.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Await blocks until the operation completes and returns its result.
// Cancelling ctx abandons the wait only; the underlying task still
// runs to completion (storage operations are not cancellable).
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Client is the asynchronous facade over a storage.Store.
type Client struct {
	store storage.Store

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	done   chan struct{}
}

// NewClient starts the worker and returns a ready facade. The caller
// retains ownership of the store; Close stops the worker but does not
// close the store.
func NewClient(store storage.Store) *Client {
	c := &Client{store: store, done: make(chan struct{})}
	c.cond = sync.NewCond(&c.mu)
	go c.run()
	return c
}

// Close drains already-submitted tasks, then stops the worker.
// Subsequent submissions resolve with ErrClosed.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cond.Signal()
	<-c.done
}

func (c *Client) run() {
	defer close(c.done)
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.cond.Wait()
		}
		if len(c.queue) == 0 {
			c.mu.Unlock()
			return
		}
		task := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		task()
	}
}

// submit enqueues fn for the worker and returns its future.
func submit[T any](c *Client, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		f.err = ErrClosed
		close(f.done)
		return f
	}
	c.queue = append(c.queue, func() {
		f.val, f.err = fn()
		close(f.done)
	})
	c.mu.Unlock()
	c.cond.Signal()

	return f
}

func (c *Client) CreateEvent(ctx context.Context, in *models.CreateEventInput) *Future[*models.Event] {
	return submit(c, func() (*models.Event, error) {
		return c.store.CreateEvent(ctx, in)
	})
}

func (c *Client) ListEvents(ctx context.Context) *Future[[]*models.Event] {
	return submit(c, func() ([]*models.Event, error) {
		return c.store.ListEvents(ctx)
	})
}

func (c *Client) GetEvent(ctx context.Context, eventID string) *Future[*models.EventDetail] {
	return submit(c, func() (*models.EventDetail, error) {
		return c.store.GetEvent(ctx, eventID)
	})
}

func (c *Client) UpdateEvent(ctx context.Context, eventID string, upd *models.EventUpdate) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.store.UpdateEvent(ctx, eventID, upd)
	})
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.store.DeleteEvent(ctx, eventID)
	})
}

func (c *Client) AddAttendee(ctx context.Context, eventID string, in *models.AttendeeInput) *Future[*models.Attendee] {
	return submit(c, func() (*models.Attendee, error) {
		return c.store.AddAttendee(ctx, eventID, in)
	})
}

func (c *Client) ListAttendees(ctx context.Context, eventID string) *Future[[]*models.Attendee] {
	return submit(c, func() ([]*models.Attendee, error) {
		return c.store.ListAttendees(ctx, eventID)
	})
}

func (c *Client) ToggleCheckIn(ctx context.Context, attendeeID string) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.store.ToggleCheckIn(ctx, attendeeID)
	})
}

func (c *Client) DeleteAttendee(ctx context.Context, attendeeID string) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.store.DeleteAttendee(ctx, attendeeID)
	})
}
