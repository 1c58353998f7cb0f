package response

import (
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/syncengine"
)

type NotificationResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Link      *string `json:"link,omitempty"`
	Timestamp string  `json:"timestamp"`
	IsRead    bool    `json:"isRead"`
}

func FromNotification(n notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID().String(),
		UserID:    n.UserID().String(),
		Type:      n.Type().String(),
		Title:     n.Type().Title(),
		Message:   n.Message().String(),
		Link:      n.Link().Ptr(),
		Timestamp: n.Timestamp().UTC().Format(time.RFC3339Nano),
		IsRead:    n.IsRead(),
	}
}

func FromNotifications(ns []notification.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(ns))
	for i, n := range ns {
		res[i] = FromNotification(n)
	}
	return res
}

type StatusResponse struct {
	Status      string `json:"status"`
	IsConnected bool   `json:"isConnected"`
	Error       string `json:"error,omitempty"`
	Since       string `json:"since"`
	State       string `json:"state,omitempty"`
}

func FromStatus(s connection.Snapshot, state syncengine.State) StatusResponse {
	return StatusResponse{
		Status:      string(s.Status),
		IsConnected: s.Status == connection.StatusConnected,
		Error:       s.Err,
		Since:       s.Since.UTC().Format(time.RFC3339Nano),
		State:       state.String(),
	}
}

type InboxResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
	IsConnected   bool                   `json:"isConnected"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

type SessionResponse struct {
	UserID      string         `json:"userId"`
	Permission  string         `json:"notificationPermission"`
	Status      StatusResponse `json:"status"`
	UnreadCount int            `json:"unreadCount"`
	// Error is set when the session started degraded.
	Error string `json:"error,omitempty"`
}
