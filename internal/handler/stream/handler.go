package stream

import (
	"log/slog"
	"net/http"
	"slices"

	resdto "gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/handler/httperr"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/session"
	"gigboard-notify/internal/usecase/syncengine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	sessions session.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *Hub, sessions session.Service, cfg config.Config, logger *slog.Logger) *Handler {
	origins := cfg.CORS.AllowOrigins
	return &Handler{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		logger: logger.With("component", "stream"),
	}
}

// @Summary Event stream
// @Description WebSocket carrying change, status, alert and permission-request frames for the caller's session. Browsers pass the token as ?token=.
// @Tags notifications
// @Security BearerAuth
// @Param token query string false "Access token"
// @Success 101
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/notifications/ws [get]
func (h *Handler) Serve(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no authenticated user in context"), "Unauthorized", nil)
		return
	}
	inbox, err := h.sessions.Inbox(userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader already answered the request
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	logger := h.logger.With("user_id", userID.String())
	cl := newClient(conn, logger)
	changes, stopChanges := inbox.Subscribe()
	statuses, stopStatuses := inbox.StatusUpdates()
	defer func() {
		stopChanges()
		stopStatuses()
		h.hub.detach(userID, cl)
		cl.close()
		logger.Debug("websocket client disconnected")
	}()

	prompt := h.hub.attach(userID, cl)
	go cl.writePump()
	go cl.readPump()
	logger.Debug("websocket client connected")

	cl.send(Frame{Type: FrameStatus, Data: resdto.FromStatus(inbox.Status(), inbox.State())})
	if prompt && inbox.Permission() == notifier.PermissionNotAsked {
		cl.send(Frame{Type: FramePermissionRequest})
	}

	for {
		select {
		case <-cl.done:
			return
		case ch, ok := <-changes:
			if !ok {
				// session ended
				return
			}
			cl.send(Frame{Type: FrameChange, Data: changeData(inbox, ch)})
		case snap, ok := <-statuses:
			if !ok {
				return
			}
			cl.send(Frame{Type: FrameStatus, Data: resdto.FromStatus(snap, inbox.State())})
		}
	}
}

func changeData(inbox session.Inbox, ch syncengine.Change) ChangeData {
	data := ChangeData{
		Kind:        string(ch.Kind),
		State:       inbox.State().String(),
		UnreadCount: inbox.UnreadCount(),
	}
	if ch.Kind == syncengine.ChangeState {
		data.State = ch.State.String()
	}
	if ch.ID == uuid.Nil {
		return data
	}
	data.ID = ch.ID.String()
	if ch.Kind == syncengine.ChangeCreated || ch.Kind == syncengine.ChangeUpdated {
		for _, n := range inbox.Notifications() {
			if n.ID() == ch.ID {
				res := resdto.FromNotification(n)
				data.Notification = &res
				break
			}
		}
	}
	return data
}
