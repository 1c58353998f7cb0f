package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gigboard-notify/internal/handler/api"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/handler/stream"
	"gigboard-notify/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Session      *api.SessionHandler
	Notification *api.NotificationHandler
	Stream       *stream.Handler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		sessions := apiGroup.Group("/session")
		sessions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Session.Start},
				{Method: http.MethodDelete, Path: "", Handler: h.Session.Stop},
				{Method: http.MethodPost, Path: "/reload", Handler: h.Session.Reload},
				{Method: http.MethodPut, Path: "/permission", Handler: h.Session.ResolvePermission},
			})
		}

		notifications := apiGroup.Group("/notifications")
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "/ws", Handler: h.Stream.Serve, Mw: []gin.HandlerFunc{authMiddleware.RequireStreamAuth()}},
			})

			authRequired := notifications.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Notification.List},
				{Method: http.MethodGet, Path: "/unread-count", Handler: h.Notification.UnreadCount},
				{Method: http.MethodGet, Path: "/status", Handler: h.Notification.Status},
				{Method: http.MethodPost, Path: "", Handler: h.Notification.Create},
				{Method: http.MethodPatch, Path: "/:id/read", Handler: h.Notification.MarkAsRead},
				{Method: http.MethodPost, Path: "/read-all", Handler: h.Notification.MarkAllAsRead},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Notification.Delete},
				{Method: http.MethodDelete, Path: "", Handler: h.Notification.ClearAll},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
