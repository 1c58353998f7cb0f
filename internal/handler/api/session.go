package api

import (
	"net/http"

	reqdto "gigboard-notify/internal/handler/dto/request"
	resdto "gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/handler/httperr"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/session"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated  = errs.New("no authenticated user in context")
	errForeignRecipient = errs.New("only producer tokens may address another user")

	notifierPermissionErrors = []error{notifier.ErrPermissionNotRequested, notifier.ErrPermissionAnswered}
)

type SessionHandler struct {
	sessions session.Service
}

func NewSessionHandler(sessions session.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// @Summary Start notification session
// @Description Log in to the notification inbox: loads the snapshot and subscribes to live changes. A previous session of the same user is replaced.
// @Tags session
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartSessionRequest false "Browser notification permission"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/session [post]
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.StartSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	permission, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification permission", nil)
		return
	}

	inbox, startErr := h.sessions.Start(c.Request.Context(), userID, permission)
	if inbox == nil {
		httperr.AbortWithDomainError(c, startErr)
		return
	}

	res := resdto.SessionResponse{
		UserID:      userID.String(),
		Permission:  string(inbox.Permission()),
		Status:      resdto.FromStatus(inbox.Status(), inbox.State()),
		UnreadCount: inbox.UnreadCount(),
	}
	if startErr != nil {
		res.Error = startErr.Error()
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Stop notification session
// @Description Log out: closes the live subscription and clears the in-memory inbox.
// @Tags session
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/session [delete]
func (h *SessionHandler) Stop(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	if err := h.sessions.Stop(userID); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reload notification session
// @Description Manual retry: re-activates a degraded session or refreshes a live one.
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatusResponse
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/session/reload [post]
func (h *SessionHandler) Reload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	if err := h.sessions.Reload(c.Request.Context(), userID); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	inbox, err := h.sessions.Inbox(userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatus(inbox.Status(), inbox.State()))
}

// @Summary Answer the permission request
// @Description Records the browser's answer to the one-time notification permission prompt.
// @Tags session
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.PermissionAnswerRequest true "Permission answer"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/session/permission [put]
func (h *SessionHandler) ResolvePermission(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.PermissionAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	permission, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid notification permission", nil)
		return
	}
	if err := h.sessions.ResolvePermission(userID, permission); err != nil {
		if errs.IsAny(err, notifierPermissionErrors...) {
			httperr.AbortWithError(c, http.StatusConflict, err, "No pending permission request", nil)
			return
		}
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
