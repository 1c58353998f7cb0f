package notifier

import (
	"context"
	"strings"
	"sync"

	"gigboard-notify/internal/pkg/errs"
)

// Permission is the browser's notification permission.
type Permission string

const (
	PermissionNotAsked Permission = "not-asked"
	PermissionGranted  Permission = "granted"
	PermissionDenied   Permission = "denied"
)

var (
	ErrPermissionNotRequested = errs.New("notification permission was not requested")
	ErrPermissionAnswered     = errs.New("notification permission was already answered")
	ErrInvalidPermission      = errs.New("invalid notification permission")
)

// ParsePermission accepts the browser's own vocabulary too ("default" is
// the not-yet-asked state of Notification.permission).
func ParsePermission(raw string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "default", string(PermissionNotAsked):
		return PermissionNotAsked, nil
	case string(PermissionGranted):
		return PermissionGranted, nil
	case string(PermissionDenied):
		return PermissionDenied, nil
	default:
		return "", errs.Wrapf(ErrInvalidPermission, "%q", raw)
	}
}

// PermissionSource reads and requests the permission of one client.
type PermissionSource interface {
	Current() Permission
	// Request prompts the user and waits for the answer.
	Request(ctx context.Context) (Permission, error)
}

// ClientPermission is the PermissionSource of a remote browser: the browser
// reports its state when the session starts, a request is sent to it through
// prompt, and the first answer to arrive through Resolve wins.
type ClientPermission struct {
	prompt func() error

	mu        sync.Mutex
	current   Permission
	requested bool
	answered  bool
	answer    chan Permission
}

func NewClientPermission(initial Permission, prompt func() error) *ClientPermission {
	return &ClientPermission{
		prompt:  prompt,
		current: initial,
		answer:  make(chan Permission, 1),
	}
}

func (c *ClientPermission) Current() Permission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Request prompts at most once for the life of c. Later calls return the
// current value without prompting.
func (c *ClientPermission) Request(ctx context.Context) (Permission, error) {
	c.mu.Lock()
	if c.requested {
		p := c.current
		c.mu.Unlock()
		return p, nil
	}
	c.requested = true
	c.mu.Unlock()

	if err := c.prompt(); err != nil {
		return c.Current(), errs.Wrap(err, "sending permission request")
	}

	select {
	case p := <-c.answer:
		return p, nil
	case <-ctx.Done():
		return c.Current(), errs.Wrap(ctx.Err(), "waiting for permission answer")
	}
}

// Resolve records the browser's answer to an outstanding request.
func (c *ClientPermission) Resolve(p Permission) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.requested {
		return ErrPermissionNotRequested
	}
	if c.answered {
		return ErrPermissionAnswered
	}
	c.answered = true
	c.current = p
	c.answer <- p
	return nil
}

// Pending reports whether a request is waiting for its answer.
func (c *ClientPermission) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requested && !c.answered
}
