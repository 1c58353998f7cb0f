package channel

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	opCreated = "created"
	opUpdated = "updated"
)

var ErrUnknownOp = errs.New("unknown change op")

type envelope struct {
	Op     string `json:"op"`
	Record record `json:"record"`
}

type record struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Link      *string         `json:"link"`
	Timestamp json.RawMessage `json:"timestamp"`
	IsRead    bool            `json:"isRead"`
}

// timestamp layouts seen from producers, most specific first
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05.999999-07",
}

// DecodePayload turns a wire message into a channel event. Unknown fields are
// ignored and unknown type values pass through; an unknown op yields
// ErrUnknownOp so callers can skip it.
func DecodePayload(raw []byte) (shared.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return shared.Event{}, errs.Wrap(err, "decoding change payload")
	}

	switch strings.ToLower(env.Op) {
	case opCreated:
		ts, err := parseTimestamp(env.Record.Timestamp)
		if err != nil {
			return shared.Event{}, err
		}
		n, err := notification.Reconstruct(env.Record.ID, env.Record.UserID, env.Record.Type,
			env.Record.Message, env.Record.Link, ts, env.Record.IsRead)
		if err != nil {
			return shared.Event{}, errs.Wrap(err, "invalid created record")
		}
		return shared.Created(n), nil
	case opUpdated:
		if env.Record.ID == uuid.Nil {
			return shared.Event{}, errs.Wrap(notification.ErrMissingID, "invalid updated record")
		}
		return shared.Updated(env.Record.ID, env.Record.UserID, env.Record.IsRead), nil
	default:
		return shared.Event{}, errs.Wrapf(ErrUnknownOp, "op %q", env.Op)
	}
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, errs.Wrap(notification.ErrMissingTimestamp, "invalid created record")
	}

	// epoch milliseconds
	if raw[0] != '"' {
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return time.Time{}, errs.Wrap(err, "parsing numeric timestamp")
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, errs.Wrap(err, "parsing timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.Newf("unrecognized timestamp %q", s)
}
