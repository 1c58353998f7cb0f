package syncengine

import (
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateLive
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

type ChangeKind string

const (
	// ChangeReset means the whole list may differ: snapshot seeded, cleared
	// or bulk-updated.
	ChangeReset   ChangeKind = "reset"
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeRemoved ChangeKind = "removed"
	ChangeState   ChangeKind = "state"
)

// Change tells subscribers that inbox state moved. Consumers re-read state
// through the engine; ID is set for single-entry changes.
type Change struct {
	Kind  ChangeKind
	ID    uuid.UUID
	State State
}

type Options struct {
	// PendingUpdateLimit bounds read updates held for notifications that
	// have not been created yet. Oldest entries are evicted first.
	PendingUpdateLimit int
	// ReloadTimeout bounds the reconciling reload after a failed write.
	ReloadTimeout time.Duration
	// SubscriberBuffer is the per-subscriber change buffer.
	SubscriberBuffer int
}

func DefaultOptions() Options {
	return Options{
		PendingUpdateLimit: 256,
		ReloadTimeout:      10 * time.Second,
		SubscriberBuffer:   64,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PendingUpdateLimit <= 0 {
		o.PendingUpdateLimit = d.PendingUpdateLimit
	}
	if o.ReloadTimeout <= 0 {
		o.ReloadTimeout = d.ReloadTimeout
	}
	if o.SubscriberBuffer <= 0 {
		o.SubscriberBuffer = d.SubscriberBuffer
	}
	return o
}
