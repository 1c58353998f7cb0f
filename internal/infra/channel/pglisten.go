package channel

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgEventBuffer = 64
	closeTimeout  = 5 * time.Second
)

// ChannelName is the LISTEN channel the notifications trigger uses for a user.
func ChannelName(userID uuid.UUID) string {
	return "inbox_" + strings.ReplaceAll(userID.String(), "-", "")
}

// PGListener opens one LISTEN connection per subscription. The connection is
// taken out of the pool for the lifetime of the handle.
type PGListener struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPGListener(pool *pgxpool.Pool, logger *slog.Logger) *PGListener {
	return &PGListener{pool: pool, logger: logger.With("component", "pg_listener")}
}

func (l *PGListener) Open(ctx context.Context, userID uuid.UUID) (shared.ChannelHandle, error) {
	pc, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "acquiring listen connection"), errs.ErrChannelDisconnected)
	}
	conn := pc.Hijack()

	channel := ChannelName(userID)
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		closeConn(conn)
		return nil, errs.Mark(errs.Wrapf(err, "listening on %s", channel), errs.ErrChannelDisconnected)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	h := &pgHandle{
		conn:   conn,
		events: make(chan shared.Event, pgEventBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
		logger: l.logger.With("channel", channel),
	}
	h.events <- shared.Connected()
	go h.loop(loopCtx)
	return h, nil
}

type pgHandle struct {
	conn      *pgx.Conn
	events    chan shared.Event
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

func (h *pgHandle) Events() <-chan shared.Event { return h.events }

// Close stops the loop and waits for the connection to be released.
func (h *pgHandle) Close() error {
	h.closeOnce.Do(h.cancel)
	<-h.done
	return nil
}

func (h *pgHandle) loop(ctx context.Context) {
	defer close(h.done)
	defer close(h.events)
	defer closeConn(h.conn)

	for {
		n, err := h.conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			h.logger.Warn("listen connection lost", "error", err)
			h.send(ctx, shared.Disconnected(errs.Mark(errs.Wrap(err, "waiting for notification"), errs.ErrChannelDisconnected)))
			return
		}

		ev, err := DecodePayload([]byte(n.Payload))
		if err != nil {
			h.logger.Warn("skipping undecodable change", "error", err)
			continue
		}
		if !h.send(ctx, ev) {
			return
		}
	}
}

func (h *pgHandle) send(ctx context.Context, ev shared.Event) bool {
	select {
	case h.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func closeConn(conn *pgx.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	_ = conn.Close(ctx)
}
