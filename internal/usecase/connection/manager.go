package connection

import (
	"log/slog"
	"sync"
	"time"

	"gigboard-notify/internal/pkg/clock"
)

type Status string

const (
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusError        Status = "error"
)

// Snapshot is a point-in-time view of the channel state.
type Snapshot struct {
	Status Status
	Err    string
	Since  time.Time
}

// Manager tracks the lifecycle of one session's event channel. It only
// records what it is told; reconnecting is the session owner's job.
type Manager struct {
	mu     sync.RWMutex
	status Status
	err    error
	since  time.Time
	subs   map[int]chan Snapshot
	nextID int
	closed bool

	clock  clock.Clock
	logger *slog.Logger
}

func NewManager(logger *slog.Logger, clk clock.Clock) *Manager {
	return &Manager{
		status: StatusDisconnected,
		since:  clk.Now(),
		subs:   make(map[int]chan Snapshot),
		clock:  clk,
		logger: logger.With("component", "connection"),
	}
}

// Set records a new status. Repeating the current status with the same error
// is ignored so subscribers only see transitions.
func (m *Manager) Set(status Status, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.status == status && errText(m.err) == errText(err) {
		return
	}

	m.logger.Debug("connection status changed",
		"from", m.status,
		"to", status,
		"error", errText(err))

	m.status = status
	m.err = err
	m.since = m.clock.Now()

	snap := m.snapshotLocked()
	for _, ch := range m.subs {
		offerLatest(ch, snap)
	}
}

func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) IsConnected() bool {
	return m.Status() == StatusConnected
}

// Err is the error recorded with the current status, if any.
func (m *Manager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Subscribe returns a channel that always holds the most recent transition a
// reader has not consumed yet, and a function to stop the subscription. The
// channel is closed on unsubscribe or Close.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	ch <- m.snapshotLocked()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				delete(m.subs, id)
				close(sub)
			}
		})
	}
}

// Close marks the manager disconnected and releases every subscriber.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.status = StatusDisconnected
	m.err = nil
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{Status: m.status, Err: errText(m.err), Since: m.since}
}

// offerLatest replaces any unread value so slow readers never block Set.
func offerLatest(ch chan Snapshot, snap Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
