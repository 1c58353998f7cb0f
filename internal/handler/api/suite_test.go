//go:build unit

package api_test

import (
	"io"
	"log/slog"

	"gigboard-notify/internal/handler"
	"gigboard-notify/internal/handler/api"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/handler/stream"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/usecase"
	"gigboard-notify/tests/common/authtest"
	sessionmock "gigboard-notify/tests/mock/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// handlerSuite serves the full route table with the session service mocked.
type handlerSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	sessions  *sessionmock.MockService
	inbox     *sessionmock.MockInbox
	jwtHelper *authtest.JWTHelper
	userID    uuid.UUID
	token     string
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.mockCtrl = gomock.NewController(s.T())
	s.sessions = sessionmock.NewMockService(s.mockCtrl)
	s.inbox = sessionmock.NewMockInbox(s.mockCtrl)

	s.jwtHelper = authtest.NewJWTHelper(cfg.JWT)
	s.userID = uuid.New()
	s.token = s.jwtHelper.GenerateToken(s.T(), s.userID)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwtHelper.Service(s.T())))
	s.router = gin.New()
	handler.NewRouter(s.router, cfg, logger, handler.Handlers{
		Session:      api.NewSessionHandler(s.sessions),
		Notification: api.NewNotificationHandler(s.sessions),
		Stream:       stream.NewHandler(stream.NewHub(logger), s.sessions, cfg, logger),
	}, auth)
}

func (s *handlerSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// withInbox makes the caller's session resolvable.
func (s *handlerSuite) withInbox() {
	s.sessions.EXPECT().Inbox(s.userID).Return(s.inbox, nil)
}
