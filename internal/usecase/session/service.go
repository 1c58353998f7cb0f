package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/shared"
	"gigboard-notify/internal/usecase/syncengine"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=../../../tests/mock/session/service.go -package=sessionmock

// Inbox is the per-user surface a client works with while logged in.
type Inbox interface {
	UserID() uuid.UUID
	Notifications() []notification.Notification
	UnreadCount() int
	IsConnected() bool
	Status() connection.Snapshot
	State() syncengine.State
	Permission() notifier.Permission

	Subscribe() (<-chan syncengine.Change, func())
	StatusUpdates() (<-chan connection.Snapshot, func())

	Add(ctx context.Context, userID uuid.UUID, typ notification.Type, message string, link *string) (notification.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearAll(ctx context.Context) error
}

// ClientGateway reaches the user's open clients.
type ClientGateway interface {
	AlertSink(userID uuid.UUID) notifier.AlertSink
	RequestPermission(userID uuid.UUID) error
}

type Service interface {
	// Start logs the user in: any previous session of the user is stopped,
	// a new one is registered and activated. An activation error is returned
	// but the session stays registered and keeps recovering.
	Start(ctx context.Context, userID uuid.UUID, permission notifier.Permission) (Inbox, error)
	// Stop logs the user out.
	Stop(userID uuid.UUID) error
	Inbox(userID uuid.UUID) (Inbox, error)
	// Reload re-activates a degraded session, or refreshes a live one.
	Reload(ctx context.Context, userID uuid.UUID) error
	ResolvePermission(userID uuid.UUID, p notifier.Permission) error
	Shutdown(ctx context.Context) error
}

type serviceImpl struct {
	repo    shared.NotificationRepository
	channel shared.EventChannel
	clients ClientGateway
	clock   clock.Clock
	cfg     config.SessionConfig
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	closed   bool
}

func NewService(
	repo shared.NotificationRepository,
	channel shared.EventChannel,
	clients ClientGateway,
	clk clock.Clock,
	cfg config.SessionConfig,
	logger *slog.Logger,
) Service {
	return &serviceImpl{
		repo:     repo,
		channel:  channel,
		clients:  clients,
		clock:    clk,
		cfg:      cfg,
		logger:   logger.With("component", "session_service"),
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (s *serviceImpl) Start(ctx context.Context, userID uuid.UUID, permission notifier.Permission) (Inbox, error) {
	if userID == uuid.Nil {
		return nil, errs.Wrap(errs.ErrInvalidNotification, "session user is required")
	}

	sess := s.newSession(userID, permission)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.cancel()
		close(sess.done)
		return nil, errs.ErrSessionClosed
	}
	previous := s.sessions[userID]
	s.sessions[userID] = sess
	s.mu.Unlock()

	if previous != nil {
		s.logger.Info("replacing session", "user_id", userID)
		previous.stop()
	}

	go func() {
		prepCtx, cancel := context.WithTimeout(sess.ctx, s.cfg.PermissionTimeout)
		defer cancel()
		p := sess.browser.Prepare(prepCtx)
		s.logger.Debug("notification permission", "user_id", userID, "permission", string(p))
	}()

	actCtx, actCancel := context.WithTimeout(ctx, s.cfg.ActivateTimeout)
	err := sess.Activate(actCtx)
	actCancel()
	if err != nil {
		s.logger.Warn("session started degraded", "user_id", userID, "error", err)
	} else {
		s.logger.Info("session started", "user_id", userID)
	}

	go s.supervise(sess.ctx, sess, err != nil)
	return sess, err
}

func (s *serviceImpl) newSession(userID uuid.UUID, permission notifier.Permission) *Session {
	conn := connection.NewManager(s.logger, s.clock)
	perm := notifier.NewClientPermission(permission, func() error {
		return s.clients.RequestPermission(userID)
	})
	browser := notifier.NewBrowser(perm, s.clients.AlertSink(userID), s.logger)

	engine := syncengine.New(userID, syncengine.Deps{
		Repo:     s.repo,
		Channel:  s.channel,
		Notifier: browser,
		Conn:     conn,
		Logger:   s.logger,
	}, syncengine.Options{
		PendingUpdateLimit: s.cfg.PendingUpdateLimit,
		ReloadTimeout:      s.cfg.ActivateTimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		Engine:     engine,
		conn:       conn,
		browser:    browser,
		permission: perm,
		ctx:        ctx,
		cancel:     cancel,
		kick:       make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// supervise re-activates the engine whenever its channel is lost. Each
// recovery retries with exponential backoff; when the attempts run out it
// waits out the cooldown and starts over, until the session stops.
func (s *serviceImpl) supervise(ctx context.Context, sess *Session, recovering bool) {
	defer close(sess.done)
	logger := s.logger.With("user_id", sess.UserID().String())

	for {
		if !recovering {
			select {
			case <-ctx.Done():
				return
			case <-sess.Lost():
			}
		}

		err := s.recover(ctx, sess)
		switch {
		case err == nil:
			logger.Info("session recovered")
			recovering = false
			continue
		case ctx.Err() != nil, errs.Is(err, errs.ErrSessionClosed):
			return
		}

		logger.Warn("session recovery exhausted, cooling down", "error", err, "cooldown", s.cfg.ReconnectCooldown)
		timer := time.NewTimer(s.cfg.ReconnectCooldown)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-sess.kick:
			timer.Stop()
		}
		recovering = sess.State() != syncengine.StateLive
	}
}

func (s *serviceImpl) recover(ctx context.Context, sess *Session) error {
	r := retrier.New(
		retrier.ExponentialBackoff(s.cfg.ReconnectAttempts, s.cfg.ReconnectBackoff),
		retrier.BlacklistClassifier{errs.ErrSessionClosed},
	)
	return r.RunCtx(ctx, func(ctx context.Context) error {
		actCtx, cancel := context.WithTimeout(ctx, s.cfg.ActivateTimeout)
		defer cancel()
		return sess.Activate(actCtx)
	})
}

func (s *serviceImpl) Stop(userID uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	delete(s.sessions, userID)
	s.mu.Unlock()

	if !ok {
		return errs.ErrNoActiveSession
	}
	sess.stop()
	s.logger.Info("session stopped", "user_id", userID)
	return nil
}

func (s *serviceImpl) Inbox(userID uuid.UUID) (Inbox, error) {
	sess, err := s.session(userID)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *serviceImpl) Reload(ctx context.Context, userID uuid.UUID) error {
	sess, err := s.session(userID)
	if err != nil {
		return err
	}

	if sess.State() == syncengine.StateLive {
		return sess.Engine.Reload(ctx)
	}
	if err := sess.Activate(ctx); err != nil {
		return err
	}
	sess.wake()
	return nil
}

func (s *serviceImpl) ResolvePermission(userID uuid.UUID, p notifier.Permission) error {
	sess, err := s.session(userID)
	if err != nil {
		return err
	}
	return sess.permission.Resolve(p)
}

// Shutdown stops every session. It gives up waiting when ctx ends.
func (s *serviceImpl) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	sessions := make([]*Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		sessions = append(sessions, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for _, sess := range sessions {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sess.stop()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
		s.logger.Info("all sessions stopped", "count", len(sessions))
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "waiting for sessions to stop")
	}
}

func (s *serviceImpl) session(userID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, errs.ErrNoActiveSession
	}
	return sess, nil
}
