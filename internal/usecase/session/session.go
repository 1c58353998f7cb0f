package session

import (
	"context"

	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/syncengine"
)

// Session binds one engine to its connection manager, notifier and
// supervisor goroutine.
type Session struct {
	*syncengine.Engine

	conn       *connection.Manager
	browser    *notifier.Browser
	permission *notifier.ClientPermission

	// ctx lives until stop; it bounds the supervisor and permission prompt.
	ctx    context.Context
	cancel context.CancelFunc
	kick   chan struct{}
	done   chan struct{}
}

var _ Inbox = (*Session)(nil)

func (s *Session) Permission() notifier.Permission {
	return s.browser.Permission()
}

func (s *Session) StatusUpdates() (<-chan connection.Snapshot, func()) {
	return s.conn.Subscribe()
}

// wake asks the supervisor to skip the rest of its cooldown.
func (s *Session) wake() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// stop ends the supervisor and closes the engine. It waits for the
// supervisor to exit.
func (s *Session) stop() {
	s.cancel()
	_ = s.Engine.Close()
	<-s.done
	s.conn.Close()
}
