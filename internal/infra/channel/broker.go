package channel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	defaultSubscriberBuffer = 256
	defaultPublishWait      = 500 * time.Millisecond
)

// Broker is an in-process event channel with one topic per user. It backs
// the SQLite and Mongo stores, which have no change feed of their own.
//
// A publish to a full subscriber waits up to the publish wait for room. A
// subscriber still full after that is disconnected; its owner recovers by
// reloading.
type Broker struct {
	logger *slog.Logger
	buffer int
	wait   time.Duration

	mu     sync.Mutex
	topics map[uuid.UUID]map[*subscription]struct{}
	closed bool
}

type BrokerOption func(*Broker)

// WithSubscriberBuffer sets how many events a subscription queues.
func WithSubscriberBuffer(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithPublishWait bounds how long Publish waits on a full subscription.
func WithPublishWait(d time.Duration) BrokerOption {
	return func(b *Broker) {
		if d >= 0 {
			b.wait = d
		}
	}
}

func NewBroker(logger *slog.Logger, opts ...BrokerOption) *Broker {
	b := &Broker{
		logger: logger.With("component", "broker"),
		buffer: defaultSubscriberBuffer,
		wait:   defaultPublishWait,
		topics: make(map[uuid.UUID]map[*subscription]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Broker) Open(_ context.Context, userID uuid.UUID) (shared.ChannelHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errs.Mark(errs.New("broker is closed"), errs.ErrChannelDisconnected)
	}

	sub := &subscription{
		broker: b,
		userID: userID,
		events: make(chan shared.Event, b.buffer),
	}
	sub.events <- shared.Connected()

	if b.topics[userID] == nil {
		b.topics[userID] = make(map[*subscription]struct{})
	}
	b.topics[userID][sub] = struct{}{}
	return sub, nil
}

// Publish delivers ev to every open subscription of userID. Other publishers
// wait while a full subscription is given time to drain.
func (b *Broker) Publish(userID uuid.UUID, ev shared.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.topics[userID] {
		if b.sendLocked(sub, ev) {
			continue
		}
		b.logger.Warn("subscriber too slow, disconnecting", "user_id", userID, "wait", b.wait)
		b.detachLocked(sub, errs.Mark(errs.New("subscriber buffer overflow"), errs.ErrChannelDisconnected))
	}
}

func (b *Broker) sendLocked(sub *subscription, ev shared.Event) bool {
	select {
	case sub.events <- ev:
		return true
	default:
	}
	if b.wait == 0 {
		return false
	}
	timer := time.NewTimer(b.wait)
	defer timer.Stop()
	select {
	case sub.events <- ev:
		return true
	case <-timer.C:
		return false
	}
}

// Disconnect drops every subscription of userID as if the connection was lost.
func (b *Broker) Disconnect(userID uuid.UUID, cause error) int {
	if cause == nil {
		cause = errs.ErrChannelDisconnected
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for sub := range b.topics[userID] {
		b.detachLocked(sub, cause)
		n++
	}
	return n
}

// Subscribers reports how many subscriptions userID currently has.
func (b *Broker) Subscribers(userID uuid.UUID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[userID])
}

// Close disconnects everyone and rejects further Opens.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.topics {
		for sub := range subs {
			b.detachLocked(sub, errs.Mark(errs.New("broker closed"), errs.ErrChannelDisconnected))
		}
	}
}

// detachLocked removes sub and ends its stream. A non-nil cause is delivered
// as a final EventDisconnected when there is room for it.
func (b *Broker) detachLocked(sub *subscription, cause error) {
	subs := b.topics[sub.userID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.userID)
	}
	if cause != nil {
		select {
		case sub.events <- shared.Disconnected(cause):
		default:
		}
	}
	close(sub.events)
}

type subscription struct {
	broker *Broker
	userID uuid.UUID
	events chan shared.Event
}

func (s *subscription) Events() <-chan shared.Event { return s.events }

func (s *subscription) Close() error {
	s.broker.mu.Lock()
	defer s.broker.mu.Unlock()
	s.broker.detachLocked(s, nil)
	return nil
}
