package request

import (
	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra/notifier"

	"github.com/google/uuid"
)

// CreateNotificationRequest adds a notification. UserID defaults to the
// caller.
type CreateNotificationRequest struct {
	UserID  *uuid.UUID `json:"userId,omitempty"`
	Type    string     `json:"type" binding:"required,max=64"`
	Message string     `json:"message" binding:"required,max=1000"`
	Link    *string    `json:"link,omitempty" binding:"omitempty,max=2048"`
}

// AddNotificationInput is the command input CreateNotificationRequest maps to.
type AddNotificationInput struct {
	UserID  uuid.UUID
	Type    notification.Type
	Message string
	Link    *string
}

type StartSessionRequest struct {
	NotificationPermission string `json:"notificationPermission" binding:"omitempty,oneof=granted denied not-asked default"`
}

func (r *StartSessionRequest) ToDomain() (notifier.Permission, error) {
	return notifier.ParsePermission(r.NotificationPermission)
}

type PermissionAnswerRequest struct {
	Permission string `json:"permission" binding:"required,oneof=granted denied"`
}

func (r *PermissionAnswerRequest) ToDomain() (notifier.Permission, error) {
	return notifier.ParsePermission(r.Permission)
}
