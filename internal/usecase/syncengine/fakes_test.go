//go:build unit

package syncengine_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
)

// memRepo is an in-memory repository with failure injection.
type memRepo struct {
	mu       sync.Mutex
	rows     []notification.Notification
	now      time.Time
	loads    int
	loadErr  error
	writeErr error
	// onInsert runs after the row is stored and before Insert returns.
	onInsert func(n notification.Notification)
	// onLoad runs after the snapshot is taken and before LoadForUser returns.
	onLoad func()
}

func newMemRepo(rows ...notification.Notification) *memRepo {
	return &memRepo{rows: rows, now: time.Unix(1000, 0).UTC()}
}

func (r *memRepo) LoadForUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	r.mu.Lock()
	r.loads++
	if r.loadErr != nil {
		err := r.loadErr
		r.mu.Unlock()
		return nil, err
	}
	var out []notification.Notification
	for _, n := range r.rows {
		if n.BelongsTo(userID) {
			out = append(out, n)
		}
	}
	hook := r.onLoad
	r.mu.Unlock()

	slices.SortStableFunc(out, func(a, b notification.Notification) int { return b.Timestamp().Compare(a.Timestamp()) })
	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo) Insert(_ context.Context, d notification.Draft) (notification.Notification, error) {
	r.mu.Lock()
	if r.writeErr != nil {
		err := r.writeErr
		r.mu.Unlock()
		return notification.Notification{}, errs.Mark(err, errs.ErrWriteRejected)
	}
	r.now = r.now.Add(time.Second)
	n := d.Materialize(uuid.Nil, r.now)
	r.rows = append(r.rows, n)
	hook := r.onInsert
	r.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return n, nil
}

func (r *memRepo) SetRead(_ context.Context, userID, id uuid.UUID, isRead bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	for i, n := range r.rows {
		if n.ID() == id && n.BelongsTo(userID) {
			r.rows[i] = n.WithRead(isRead)
			return nil
		}
	}
	return errs.Mark(errs.ErrNotificationNotFound, errs.ErrWriteRejected)
}

func (r *memRepo) SetAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return 0, r.writeErr
	}
	var changed int64
	for i, n := range r.rows {
		if n.BelongsTo(userID) && !n.IsRead() {
			r.rows[i] = n.WithRead(true)
			changed++
		}
	}
	return changed, nil
}

func (r *memRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.rows = slices.DeleteFunc(r.rows, func(n notification.Notification) bool {
		return n.ID() == id && n.BelongsTo(userID)
	})
	return nil
}

func (r *memRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return 0, r.writeErr
	}
	before := len(r.rows)
	r.rows = slices.DeleteFunc(r.rows, func(n notification.Notification) bool { return n.BelongsTo(userID) })
	return int64(before - len(r.rows)), nil
}

func (r *memRepo) put(n notification.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, n)
}

func (r *memRepo) setLoadErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErr = err
}

func (r *memRepo) setWriteErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writeErr = err
}

func (r *memRepo) loadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}

func (r *memRepo) get(id uuid.UUID) (notification.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID() == id {
			return n, true
		}
	}
	return notification.Notification{}, false
}

// fakeChannel hands out handles the test drives directly.
type fakeChannel struct {
	mu      sync.Mutex
	handles []*fakeHandle
	openErr error
}

func (c *fakeChannel) Open(_ context.Context, _ uuid.UUID) (shared.ChannelHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openErr != nil {
		return nil, c.openErr
	}
	// unbuffered: a returned emit means every earlier event was applied
	h := &fakeHandle{events: make(chan shared.Event)}
	c.handles = append(c.handles, h)
	return h, nil
}

func (c *fakeChannel) setOpenErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openErr = err
}

func (c *fakeChannel) last() *fakeHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.handles) == 0 {
		return nil
	}
	return c.handles[len(c.handles)-1]
}

func (c *fakeChannel) opened() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

type fakeHandle struct {
	mu     sync.Mutex
	events chan shared.Event
	closed bool
	closes int
}

func (h *fakeHandle) Events() <-chan shared.Event { return h.events }

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
	if !h.closed {
		h.closed = true
		close(h.events)
	}
	return nil
}

// emit hands ev to the engine's loop unless the handle was closed; it
// reports whether the loop took it.
func (h *fakeHandle) emit(ev shared.Event) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	select {
	case h.events <- ev:
		return true
	case <-time.After(time.Second):
		return false
	}
}

// drop ends the stream as if the connection died.
func (h *fakeHandle) drop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.closed {
		h.closed = true
		close(h.events)
	}
}

func (h *fakeHandle) isClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []uuid.UUID
}

func (n *recordingNotifier) Notify(x notification.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, x.ID())
}

func (n *recordingNotifier) ids() []uuid.UUID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.alerts)
}
