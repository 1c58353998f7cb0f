package notifier

import (
	"context"
	"log/slog"
	"sync"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/pkg/errs"

	"github.com/google/uuid"
)

// Alert is what the browser shows as a system notification.
type Alert struct {
	ID      uuid.UUID `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Link    string    `json:"link,omitempty"`
}

// AlertSink delivers alerts to the user's open clients.
type AlertSink interface {
	Alert(a Alert) error
}

type AlertSinkFunc func(a Alert) error

func (f AlertSinkFunc) Alert(a Alert) error { return f(a) }

// Browser surfaces newly arrived notifications as system alerts when the user
// granted permission. Nothing it does fails its caller.
type Browser struct {
	source PermissionSource
	sink   AlertSink
	logger *slog.Logger

	prepareOnce sync.Once
}

func NewBrowser(source PermissionSource, sink AlertSink, logger *slog.Logger) *Browser {
	return &Browser{
		source: source,
		sink:   sink,
		logger: logger.With("component", "browser_notifier"),
	}
}

// Prepare reads the permission once and, if the user was never asked, asks
// once. Repeated calls do nothing.
func (b *Browser) Prepare(ctx context.Context) Permission {
	b.prepareOnce.Do(func() {
		if b.source.Current() != PermissionNotAsked {
			return
		}
		if _, err := b.source.Request(ctx); err != nil {
			b.logger.Debug("permission request failed", "error", errs.Mark(err, errs.ErrNotifierUnavailable))
		}
	})
	return b.source.Current()
}

// Permission is read through on every call so a late answer still counts.
func (b *Browser) Permission() Permission {
	return b.source.Current()
}

// Notify never returns an error and never panics.
func (b *Browser) Notify(n notification.Notification) {
	if b.Permission() != PermissionGranted {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Debug("alert sink panicked", "notification_id", n.ID(), "panic", r)
		}
	}()

	if err := b.sink.Alert(toAlert(n)); err != nil {
		b.logger.Debug("alert not delivered", "notification_id", n.ID(), "error", errs.Mark(err, errs.ErrNotifierUnavailable))
	}
}

func toAlert(n notification.Notification) Alert {
	return Alert{
		ID:      n.ID(),
		Type:    n.Type().String(),
		Title:   n.Type().Title(),
		Message: n.Message().String(),
		Link:    n.Link().String(),
	}
}
