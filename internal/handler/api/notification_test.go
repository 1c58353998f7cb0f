//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"gigboard-notify/internal/domain/notification"
	resdto "gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/syncengine"
	"gigboard-notify/tests/common/builder"
	"gigboard-notify/tests/common/httptest"
	"gigboard-notify/tests/common/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NotificationHandlerTestSuite struct {
	handlerSuite
}

func TestNotificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}

type testCaseNotification struct {
	name         string
	mutate       func(m map[string]any)
	expectCode   int
	expectInBody string
}

func (s *NotificationHandlerTestSuite) TestList() {
	url := "/api/notifications"

	s.Run("success: returns the inbox newest first with counters", func() {
		items := builder.Notifications(s.userID, 30, 20)
		s.withInbox()
		s.inbox.EXPECT().Notifications().Return(items)
		s.inbox.EXPECT().UnreadCount().Return(2)
		s.inbox.EXPECT().IsConnected().Return(true)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.token)

		var res resdto.InboxResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		want := resdto.InboxResponse{
			Notifications: resdto.FromNotifications(items),
			UnreadCount:   2,
			IsConnected:   true,
		}
		if diff := cmp.Diff(want, res); diff != "" {
			s.T().Errorf("inbox mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("error: 409 without an active session", func() {
		s.sessions.EXPECT().Inbox(s.userID).Return(nil, errs.ErrNoActiveSession)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No active notification session")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 with an expired token", func() {
		expired := s.jwtHelper.CreateExpiredToken(s.T(), s.userID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *NotificationHandlerTestSuite) TestCountersAndStatus() {
	s.Run("success: unread count", func() {
		s.withInbox()
		s.inbox.EXPECT().UnreadCount().Return(7)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/notifications/unread-count", nil, s.token)

		var res resdto.UnreadCountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(7, res.UnreadCount)
	})

	s.Run("success: degraded status carries the last error", func() {
		since := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		s.withInbox()
		s.inbox.EXPECT().Status().Return(connection.Snapshot{Status: connection.StatusError, Err: "storage unavailable", Since: since})
		s.inbox.EXPECT().State().Return(syncengine.StateDegraded)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/notifications/status", nil, s.token)

		var res resdto.StatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal(resdto.StatusResponse{
			Status:      "error",
			IsConnected: false,
			Error:       "storage unavailable",
			Since:       "2026-05-01T12:00:00Z",
			State:       "degraded",
		}, res)
	})
}

func (s *NotificationHandlerTestSuite) TestCreate() {
	url := "/api/notifications"
	b := builder.NewNotificationBuilder().WithUserID(s.userID)
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: returns 201 with the stored notification", func() {
		stored := b.BuildDomain()
		s.withInbox()
		s.inbox.EXPECT().Add(gomock.Any(), s.userID, b.Type, b.Message, b.Link).Return(stored, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)

		var res resdto.NotificationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal(resdto.FromNotification(stored), res)
	})

	s.Run("success: user id defaults to the session user", func() {
		s.withInbox()
		s.inbox.EXPECT().Add(gomock.Any(), uuid.Nil, notification.TypeNewMessage, "hello", nil).
			Return(b.BuildDomain(), nil)

		body := map[string]any{"type": "New-Message", "message": "hello"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 403 when a plain token addresses another user", func() {
		s.withInbox()
		body := map[string]any{"type": "New-Message", "message": "hello", "userId": uuid.New().String()}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("success: a producer token may address another user", func() {
		recipient := uuid.New()
		s.withInbox()
		s.inbox.EXPECT().Add(gomock.Any(), recipient, notification.TypeNewMessage, "hello", nil).
			Return(builder.NewNotificationBuilder().WithUserID(recipient).BuildDomain(), nil)

		body := map[string]any{"type": "New-Message", "message": "hello", "userId": recipient.String()}
		producer := s.jwtHelper.GenerateProducerToken(s.T(), s.userID)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, producer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseNotification{
			{name: "missing field: type (required)", mutate: testutil.Field("type", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: message (required)", mutate: testutil.Field("message", nil), expectCode: http.StatusBadRequest},
			{name: "message boundary invalid (1001 chars)", mutate: testutil.Field("message", strings.Repeat("a", 1001)), expectCode: http.StatusBadRequest},
			{name: "link boundary invalid (2049 chars)", mutate: testutil.Field("link", strings.Repeat("l", 2049)), expectCode: http.StatusBadRequest},
			{name: "userId not a uuid", mutate: testutil.Field("userId", "nope"), expectCode: http.StatusBadRequest, expectInBody: "Invalid request"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.withInbox()
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectInBody)
			})
		}
	})

	s.Run("error: status follows the error taxonomy", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectMsg  string
		}{
			{
				name:       "invalid notification",
				err:        errs.Mark(errs.Mark(notification.ErrEmptyMessage, errs.ErrInvalidNotification), errs.ErrWriteRejected),
				expectCode: http.StatusBadRequest,
				expectMsg:  "Invalid notification",
			},
			{
				name:       "write rejected",
				err:        errs.Mark(errs.New("constraint"), errs.ErrWriteRejected),
				expectCode: http.StatusUnprocessableEntity,
				expectMsg:  "Write rejected",
			},
			{
				name:       "session closed under the request",
				err:        errs.ErrSessionClosed,
				expectCode: http.StatusConflict,
			},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.withInbox()
				s.inbox.EXPECT().Add(gomock.Any(), s.userID, b.Type, b.Message, b.Link).
					Return(notification.Notification{}, tc.err)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

func (s *NotificationHandlerTestSuite) TestReadAndDelete() {
	id := uuid.New()

	s.Run("success: mark as read", func() {
		s.withInbox()
		s.inbox.EXPECT().MarkAsRead(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/notifications/"+id.String()+"/read", nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/notifications/not-a-uuid/read", nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 422 when the write is rejected", func() {
		s.withInbox()
		s.inbox.EXPECT().MarkAsRead(gomock.Any(), id).
			Return(errs.Mark(errs.Mark(errs.New("connection refused"), errs.ErrStorageUnavailable), errs.ErrWriteRejected))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/notifications/"+id.String()+"/read", nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Write rejected")
	})

	s.Run("success: mark all as read", func() {
		s.withInbox()
		s.inbox.EXPECT().MarkAllAsRead(gomock.Any()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/notifications/read-all", nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})

	s.Run("success: delete", func() {
		s.withInbox()
		s.inbox.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/notifications/"+id.String(), nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})

	s.Run("success: clear all", func() {
		s.withInbox()
		s.inbox.EXPECT().ClearAll(gomock.Any()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/notifications", nil, s.token)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})
}
