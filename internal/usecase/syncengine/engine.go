package syncengine

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("gigboard-notify/syncengine")

type Deps struct {
	Repo     shared.NotificationRepository
	Channel  shared.EventChannel
	Notifier shared.Notifier
	Conn     *connection.Manager
	Logger   *slog.Logger
}

// Engine owns the in-memory inbox of one user session. It seeds state from
// the repository, merges channel events in delivery order, and applies
// commands optimistically before writing them through.
//
// Lock order is applyMu then mu. applyMu serializes everything that must not
// interleave with event application (activation, reloads, Add); mu guards the
// fields below it and is never held across I/O.
type Engine struct {
	userID   uuid.UUID
	repo     shared.NotificationRepository
	channel  shared.EventChannel
	notifier shared.Notifier
	conn     *connection.Manager
	logger   *slog.Logger
	opts     Options

	applyMu sync.Mutex

	mu         sync.RWMutex
	state      State
	gen        uint64
	closed     bool
	handle     shared.ChannelHandle
	inbox      *notification.Inbox
	pending    *pendingReads
	loads      uint64
	tombstones map[uuid.UUID]uint64
	own        map[uuid.UUID]struct{}
	subs       map[int]chan Change
	nextSub    int

	lost chan struct{}
}

func New(userID uuid.UUID, deps Deps, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		userID:     userID,
		repo:       deps.Repo,
		channel:    deps.Channel,
		notifier:   deps.Notifier,
		conn:       deps.Conn,
		logger:     deps.Logger.With("component", "syncengine", "user_id", userID.String()),
		opts:       opts,
		state:      StateIdle,
		inbox:      notification.NewInbox(),
		pending:    newPendingReads(opts.PendingUpdateLimit),
		tombstones: make(map[uuid.UUID]uint64),
		own:        make(map[uuid.UUID]struct{}),
		subs:       make(map[int]chan Change),
		lost:       make(chan struct{}, 1),
	}
}

func (e *Engine) UserID() uuid.UUID { return e.userID }

// Activate (re)enters Loading: any open channel is closed, a fresh
// subscription is opened, the snapshot is loaded and seeded, and the engine
// goes Live. The subscription is opened before the load so nothing published
// in between is missed; overlap is removed by dedup.
//
// On failure the engine is Degraded and the error is marked
// errs.ErrStorageUnavailable or errs.ErrChannelDisconnected. When the load
// succeeds but the channel does not, the snapshot is still seeded.
func (e *Engine) Activate(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "syncengine.Activate", trace.WithAttributes(attribute.String("user_id", e.userID.String())))
	defer func() { endSpan(span, err) }()

	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errs.ErrSessionClosed
	}
	e.gen++
	gen := e.gen
	load := e.beginLoadLocked()
	previous := e.handle
	e.handle = nil
	e.state = StateLoading
	e.mu.Unlock()

	e.closeHandle(previous)
	e.conn.Set(connection.StatusConnecting, nil)
	e.publish(Change{Kind: ChangeState, State: StateLoading})

	handle, openErr := e.channel.Open(ctx, e.userID)

	snapshot, loadErr := e.repo.LoadForUser(ctx, e.userID)
	if loadErr != nil {
		e.closeHandle(handle)
		e.degrade(gen, connection.StatusError, loadErr)
		e.logger.Warn("failed to load inbox snapshot", "error", loadErr)
		return errs.Mark(errs.Wrap(loadErr, "load inbox snapshot"), errs.ErrStorageUnavailable)
	}

	if !e.seed(gen, load, snapshot) {
		e.closeHandle(handle)
		return errs.ErrSessionClosed
	}

	if openErr != nil {
		e.degrade(gen, connection.StatusDisconnected, openErr)
		e.logger.Warn("failed to open event channel", "error", openErr)
		return errs.Mark(errs.Wrap(openErr, "open event channel"), errs.ErrChannelDisconnected)
	}

	e.mu.Lock()
	if e.gen != gen || e.closed {
		e.mu.Unlock()
		e.closeHandle(handle)
		return errs.ErrSessionClosed
	}
	e.handle = handle
	e.state = StateLive
	e.mu.Unlock()

	e.conn.Set(connection.StatusConnected, nil)
	e.publish(Change{Kind: ChangeState, State: StateLive})
	e.logger.Info("inbox live", "entries", len(snapshot))

	go e.run(gen, handle)
	return nil
}

// Close returns the engine to Idle: the channel is closed, state is cleared
// and subscribers are released. Events still in flight are discarded. Calling
// Close again is a no-op.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.gen++
	handle := e.handle
	e.handle = nil
	e.state = StateIdle
	e.inbox = notification.NewInbox()
	e.pending.reset()
	e.tombstones = make(map[uuid.UUID]uint64)
	e.own = make(map[uuid.UUID]struct{})
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.mu.Unlock()

	e.conn.Set(connection.StatusDisconnected, nil)
	e.logger.Info("inbox closed")

	if handle == nil {
		return nil
	}
	return handle.Close()
}

// Lost is signalled when a live channel drops. The signal is coalesced: one
// pending signal covers any number of losses.
func (e *Engine) Lost() <-chan struct{} { return e.lost }

// Reads

func (e *Engine) Notifications() []notification.Notification {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inbox.Items()
}

func (e *Engine) UnreadCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inbox.UnreadCount()
}

func (e *Engine) IsConnected() bool {
	return e.conn.IsConnected()
}

func (e *Engine) Status() connection.Snapshot {
	return e.conn.Snapshot()
}

func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Subscribe returns a stream of state changes and a cancel function. Sends
// never block: a subscriber that falls behind misses changes and should
// re-read state. The stream is closed by cancel or Close.
func (e *Engine) Subscribe() (<-chan Change, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan Change, e.opts.SubscriberBuffer)
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if sub, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(sub)
			}
		})
	}
}

// Commands

// Add inserts a notification for userID (the session user when Nil). State
// is not touched: the channel echo brings the entry in, and the echo of an
// Add from this session does not raise a browser alert. Event application is
// paused while the insert is in flight so the echo cannot overtake it.
func (e *Engine) Add(ctx context.Context, userID uuid.UUID, typ notification.Type, message string, link *string) (n notification.Notification, err error) {
	ctx, span := tracer.Start(ctx, "syncengine.Add", trace.WithAttributes(attribute.String("type", string(typ))))
	defer func() { endSpan(span, err) }()

	if userID == uuid.Nil {
		userID = e.userID
	}
	draft, err := notification.NewDraft(userID, typ, message, link)
	if err != nil {
		return notification.Notification{}, errs.Mark(errs.Mark(err, errs.ErrInvalidNotification), errs.ErrWriteRejected)
	}
	if e.isClosed() {
		return notification.Notification{}, errs.ErrSessionClosed
	}

	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	n, err = e.repo.Insert(ctx, draft)
	if err != nil {
		e.logger.Warn("insert rejected", "error", err)
		return notification.Notification{}, errs.Mark(err, errs.ErrWriteRejected)
	}

	e.mu.Lock()
	if !e.closed && n.BelongsTo(e.userID) {
		e.own[n.ID()] = struct{}{}
	}
	e.mu.Unlock()
	return n, nil
}

// MarkAsRead flags id read locally, then writes through. A failed write is
// returned and followed by a reconciling reload.
func (e *Engine) MarkAsRead(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "syncengine.MarkAsRead")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errs.ErrSessionClosed
	}
	changed := false
	if cur, ok := e.inbox.Get(id); ok && !cur.IsRead() {
		e.inbox.SetRead(id, true)
		changed = true
	}
	e.mu.Unlock()
	if changed {
		e.publish(Change{Kind: ChangeUpdated, ID: id})
	}

	if err := e.repo.SetRead(ctx, e.userID, id, true); err != nil {
		return e.writeFailed(ctx, "mark as read", err)
	}
	return nil
}

func (e *Engine) MarkAllAsRead(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "syncengine.MarkAllAsRead")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errs.ErrSessionClosed
	}
	changed := e.inbox.SetAllRead()
	e.mu.Unlock()
	if changed > 0 {
		e.publish(Change{Kind: ChangeReset})
	}

	if _, err := e.repo.SetAllRead(ctx, e.userID); err != nil {
		return e.writeFailed(ctx, "mark all as read", err)
	}
	return nil
}

// Delete removes id locally, then writes through. The id stays suppressed
// until a snapshot loaded after the write finished, so neither a replayed
// Created nor a load racing the write can bring it back.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "syncengine.Delete")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errs.ErrSessionClosed
	}
	removed := e.inbox.Remove(id)
	e.tombstones[id] = tombstoneInFlight
	e.pending.drop(id)
	e.mu.Unlock()
	if removed {
		e.publish(Change{Kind: ChangeRemoved, ID: id})
	}

	err = e.repo.Delete(ctx, e.userID, id)
	e.settleTombstones(id)
	if err != nil {
		return e.writeFailed(ctx, "delete", err)
	}
	return nil
}

func (e *Engine) ClearAll(ctx context.Context) (err error) {
	ctx, span := tracer.Start(ctx, "syncengine.ClearAll")
	defer func() { endSpan(span, err) }()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return errs.ErrSessionClosed
	}
	cleared := e.inbox.Clear()
	for _, id := range cleared {
		e.tombstones[id] = tombstoneInFlight
	}
	e.pending.reset()
	e.mu.Unlock()
	e.publish(Change{Kind: ChangeReset})

	_, err = e.repo.DeleteAllForUser(ctx, e.userID)
	e.settleTombstones(cleared...)
	if err != nil {
		return e.writeFailed(ctx, "clear all", err)
	}
	return nil
}

// Reload replaces local state with a fresh snapshot without touching the
// channel. If the load fails the engine degrades and signals Lost.
func (e *Engine) Reload(ctx context.Context) error {
	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	e.mu.Lock()
	gen, closed := e.gen, e.closed
	load := e.beginLoadLocked()
	e.mu.Unlock()
	if closed {
		return errs.ErrSessionClosed
	}

	snapshot, err := e.repo.LoadForUser(ctx, e.userID)
	if err != nil {
		e.logger.Warn("reconciling reload failed", "error", err)
		e.loseChannel(gen, nil, connection.StatusError, err)
		return errs.Mark(errs.Wrap(err, "reload inbox snapshot"), errs.ErrStorageUnavailable)
	}
	if !e.seed(gen, load, snapshot) {
		return errs.ErrSessionClosed
	}
	return nil
}

func (e *Engine) writeFailed(ctx context.Context, op string, err error) error {
	e.logger.Warn("write-through failed, reconciling", "op", op, "error", err)

	reloadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.opts.ReloadTimeout)
	defer cancel()
	if reloadErr := e.Reload(reloadCtx); reloadErr != nil && !errs.Is(reloadErr, errs.ErrSessionClosed) {
		e.logger.Warn("inbox left stale until reconnect", "op", op)
	}
	return err
}

// Event loop

func (e *Engine) run(gen uint64, handle shared.ChannelHandle) {
	for ev := range handle.Events() {
		if !e.apply(gen, ev) {
			return
		}
	}
	e.loseChannel(gen, handle, connection.StatusDisconnected, errs.ErrChannelDisconnected)
}

// apply merges one event. It returns false once the handle is stale or the
// channel reported itself lost.
func (e *Engine) apply(gen uint64, ev shared.Event) bool {
	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	e.mu.Lock()
	if e.gen != gen || e.closed {
		e.mu.Unlock()
		return false
	}

	var (
		change Change
		alert  *notification.Notification
	)
	switch ev.Kind {
	case shared.EventCreated:
		change, alert = e.mergeCreatedLocked(ev.Notification)
	case shared.EventUpdated:
		change = e.mergeUpdatedLocked(ev.Update)
	case shared.EventUpdatedBatch:
		change = e.mergeBatchLocked(ev.Updates)
	case shared.EventConnected:
		e.mu.Unlock()
		e.conn.Set(connection.StatusConnected, nil)
		return true
	case shared.EventDisconnected:
		e.mu.Unlock()
		cause := ev.Err
		if cause == nil {
			cause = errs.ErrChannelDisconnected
		}
		e.loseChannel(gen, e.handleFor(gen), connection.StatusDisconnected, cause)
		return false
	default:
		e.logger.Debug("ignoring unknown channel event", "kind", ev.Kind)
	}
	e.mu.Unlock()

	if change.Kind != "" {
		e.publish(change)
	}
	if alert != nil {
		e.notifier.Notify(*alert)
	}
	return true
}

func (e *Engine) mergeCreatedLocked(n notification.Notification) (Change, *notification.Notification) {
	id := n.ID()
	if !n.BelongsTo(e.userID) {
		e.logger.Warn("dropping event for another user", "notification_id", id, "owner", n.UserID())
		return Change{}, nil
	}
	if _, deleted := e.tombstones[id]; deleted {
		return Change{}, nil
	}
	_, own := e.own[id]
	delete(e.own, id)

	if !e.inbox.Merge(n) {
		return Change{}, nil
	}
	if isRead, ok := e.pending.take(id); ok {
		e.inbox.SetRead(id, isRead)
	}
	if own {
		return Change{Kind: ChangeCreated, ID: id}, nil
	}
	return Change{Kind: ChangeCreated, ID: id}, &n
}

func (e *Engine) mergeUpdatedLocked(u shared.ReadUpdate) Change {
	if u.UserID != uuid.Nil && u.UserID != e.userID {
		e.logger.Warn("dropping update for another user", "notification_id", u.ID, "owner", u.UserID)
		return Change{}
	}
	if _, deleted := e.tombstones[u.ID]; deleted {
		return Change{}
	}
	cur, ok := e.inbox.Get(u.ID)
	if !ok {
		if evicted := e.pending.put(u.ID, u.IsRead); evicted != uuid.Nil {
			e.logger.Debug("pending update evicted", "notification_id", evicted)
		}
		return Change{}
	}
	if cur.IsRead() == u.IsRead {
		return Change{}
	}
	e.inbox.SetRead(u.ID, u.IsRead)
	return Change{Kind: ChangeUpdated, ID: u.ID}
}

// mergeBatchLocked applies every update of a bulk write. More than one
// visible change collapses into a reset.
func (e *Engine) mergeBatchLocked(updates []shared.ReadUpdate) Change {
	var (
		last    Change
		changed int
	)
	for _, u := range updates {
		if c := e.mergeUpdatedLocked(u); c.Kind != "" {
			last = c
			changed++
		}
	}
	if changed > 1 {
		return Change{Kind: ChangeReset}
	}
	return last
}

// tombstoneInFlight marks a delete whose write has not returned yet.
const tombstoneInFlight = math.MaxUint64

func (e *Engine) beginLoadLocked() uint64 {
	e.loads++
	return e.loads
}

// settleTombstones stamps ids with the last load started before their write
// returned. Only a load started afterwards may clear them.
func (e *Engine) settleTombstones(ids ...uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range ids {
		if stamp, ok := e.tombstones[id]; ok && stamp == tombstoneInFlight {
			e.tombstones[id] = e.loads
		}
	}
}

// seed installs a snapshot unless the engine moved on to another generation.
// Tombstones settled before load began are cleared; the rest keep filtering.
func (e *Engine) seed(gen, load uint64, snapshot []notification.Notification) bool {
	e.mu.Lock()
	if e.gen != gen || e.closed {
		e.mu.Unlock()
		return false
	}
	for id, stamp := range e.tombstones {
		if stamp < load {
			delete(e.tombstones, id)
		}
	}
	owned := make([]notification.Notification, 0, len(snapshot))
	for _, n := range snapshot {
		if !n.BelongsTo(e.userID) {
			e.logger.Warn("dropping snapshot entry for another user", "notification_id", n.ID())
			continue
		}
		if _, deleted := e.tombstones[n.ID()]; deleted {
			continue
		}
		delete(e.own, n.ID())
		owned = append(owned, n)
	}
	e.inbox.Replace(owned)
	e.pending.reset()
	e.mu.Unlock()

	e.publish(Change{Kind: ChangeReset})
	return true
}

func (e *Engine) degrade(gen uint64, status connection.Status, cause error) {
	e.mu.Lock()
	if e.gen != gen || e.closed {
		e.mu.Unlock()
		return
	}
	e.state = StateDegraded
	e.mu.Unlock()

	e.conn.Set(status, cause)
	e.publish(Change{Kind: ChangeState, State: StateDegraded})
}

// loseChannel degrades the engine, closes its handle and signals Lost. When
// from is set, nothing happens unless from is still the installed handle.
func (e *Engine) loseChannel(gen uint64, from shared.ChannelHandle, status connection.Status, cause error) {
	e.mu.Lock()
	if e.gen != gen || e.closed || (from != nil && e.handle != from) {
		e.mu.Unlock()
		return
	}
	handle := e.handle
	e.handle = nil
	e.state = StateDegraded
	e.mu.Unlock()

	e.closeHandle(handle)
	e.conn.Set(status, cause)
	e.publish(Change{Kind: ChangeState, State: StateDegraded})
	e.logger.Warn("event channel lost", "error", cause)

	select {
	case e.lost <- struct{}{}:
	default:
	}
}

func (e *Engine) handleFor(gen uint64) shared.ChannelHandle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.gen != gen {
		return nil
	}
	return e.handle
}

func (e *Engine) closeHandle(h shared.ChannelHandle) {
	if h == nil {
		return
	}
	if err := h.Close(); err != nil {
		e.logger.Debug("closing event channel", "error", err)
	}
}

func (e *Engine) publish(c Change) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

func (e *Engine) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
