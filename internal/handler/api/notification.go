package api

import (
	"net/http"

	"gigboard-notify/internal/domain/notification"
	reqdto "gigboard-notify/internal/handler/dto/request"
	resdto "gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/handler/httperr"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/usecase/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type NotificationHandler struct {
	sessions session.Service
}

func NewNotificationHandler(sessions session.Service) *NotificationHandler {
	return &NotificationHandler{sessions: sessions}
}

// inbox resolves the caller's session or aborts the request.
func (h *NotificationHandler) inbox(c *gin.Context) (session.Inbox, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return nil, false
	}
	inbox, err := h.sessions.Inbox(userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return nil, false
	}
	return inbox, true
}

// @Summary List notifications
// @Description Newest-first inbox with the unread count and connection flag.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.InboxResponse
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.InboxResponse{
		Notifications: resdto.FromNotifications(inbox.Notifications()),
		UnreadCount:   inbox.UnreadCount(),
		IsConnected:   inbox.IsConnected(),
	})
}

// @Summary Unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UnreadCountResponse
// @Failure 409 {object} httperr.Response
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.UnreadCountResponse{UnreadCount: inbox.UnreadCount()})
}

// @Summary Connection status
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatusResponse
// @Failure 409 {object} httperr.Response
// @Router /api/notifications/status [get]
func (h *NotificationHandler) Status(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatus(inbox.Status(), inbox.State()))
}

// @Summary Add notification
// @Description Persists a notification. It reaches inboxes through the live channel.
// @Description A userId other than the caller's requires a producer token.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateNotificationRequest true "Notification"
// @Success 201 {object} resdto.NotificationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	var req reqdto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	var in reqdto.AddNotificationInput
	if err := copier.CopyWithOption(&in, &req, copier.Option{IgnoreEmpty: true}); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in.Type = notification.ParseType(req.Type)

	if caller, _ := middleware.GetUserID(c); in.UserID != uuid.Nil && in.UserID != caller && !middleware.IsProducer(c) {
		httperr.AbortWithError(c, http.StatusForbidden, errForeignRecipient, "Forbidden", nil)
		return
	}

	n, err := inbox.Add(c.Request.Context(), in.UserID, in.Type, in.Message, in.Link)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromNotification(n))
}

// @Summary Mark notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	if err := inbox.MarkAsRead(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark all notifications read
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	if err := inbox.MarkAllAsRead(c.Request.Context()); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete notification
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	if err := inbox.Delete(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear inbox
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/notifications [delete]
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	inbox, ok := h.inbox(c)
	if !ok {
		return
	}
	if err := inbox.ClearAll(c.Request.Context()); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
