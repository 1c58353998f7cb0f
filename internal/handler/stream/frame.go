package stream

import (
	resdto "gigboard-notify/internal/handler/dto/response"
)

type FrameType string

const (
	FrameChange            FrameType = "change"
	FrameStatus            FrameType = "status"
	FrameAlert             FrameType = "alert"
	FramePermissionRequest FrameType = "permission-request"
)

// Frame is one JSON message on the event stream.
type Frame struct {
	Type FrameType `json:"type"`
	Data any       `json:"data,omitempty"`
}

type ChangeData struct {
	Kind         string                       `json:"kind"`
	ID           string                       `json:"id,omitempty"`
	State        string                       `json:"state"`
	UnreadCount  int                          `json:"unreadCount"`
	Notification *resdto.NotificationResponse `json:"notification,omitempty"`
}
