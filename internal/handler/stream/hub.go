package stream

import (
	"log/slog"
	"sync"

	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/session"

	"github.com/google/uuid"
)

// Hub tracks the open WebSocket clients of every user. It is the session
// service's way to reach browsers: alerts and permission prompts go out as
// frames on every socket the user has open.
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]map[*client]struct{}
	// prompts holds permission requests raised while the user had no
	// socket open; they go out on the next connect.
	prompts map[uuid.UUID]struct{}
	logger  *slog.Logger
}

var _ session.ClientGateway = (*Hub)(nil)

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*client]struct{}),
		prompts: make(map[uuid.UUID]struct{}),
		logger:  logger.With("component", "stream_hub"),
	}
}

func (h *Hub) AlertSink(userID uuid.UUID) notifier.AlertSink {
	return notifier.AlertSinkFunc(func(a notifier.Alert) error {
		if h.broadcast(userID, Frame{Type: FrameAlert, Data: a}) == 0 {
			return errs.Wrap(errs.ErrNotifierUnavailable, "no open client")
		}
		return nil
	})
}

func (h *Hub) RequestPermission(userID uuid.UUID) error {
	if h.broadcast(userID, Frame{Type: FramePermissionRequest}) > 0 {
		return nil
	}
	h.mu.Lock()
	h.prompts[userID] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("permission request deferred until a client connects", "user_id", userID)
	return nil
}

// Clients reports how many sockets userID has open.
func (h *Hub) Clients(userID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

// attach registers c and reports whether a deferred permission prompt was
// waiting for it.
func (h *Hub) attach(userID uuid.UUID, c *client) (prompt bool) {
	h.mu.Lock()
	set, ok := h.clients[userID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[userID] = set
	}
	set[c] = struct{}{}
	_, prompt = h.prompts[userID]
	delete(h.prompts, userID)
	h.mu.Unlock()
	return prompt
}

func (h *Hub) detach(userID uuid.UUID, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[userID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) broadcast(userID uuid.UUID, f Frame) int {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	sent := 0
	for _, c := range targets {
		if c.send(f) {
			sent++
		}
	}
	return sent
}
