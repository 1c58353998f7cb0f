//go:build unit

package stream_test

import (
	"encoding/json"
	"io"
	"log/slog"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"gigboard-notify/internal/domain/notification"
	resdto "gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/internal/handler/stream"
	"gigboard-notify/internal/infra/notifier"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/connection"
	"gigboard-notify/internal/usecase/syncengine"
	"gigboard-notify/tests/common/builder"
	"gigboard-notify/tests/common/httptest"
	sessionmock "gigboard-notify/tests/mock/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const frameTimeout = 2 * time.Second

type streamFixture struct {
	hub      *stream.Hub
	inbox    *sessionmock.MockInbox
	server   *nethttptest.Server
	userID   uuid.UUID
	changes  chan syncengine.Change
	statuses chan connection.Snapshot
}

func newStreamFixture(t *testing.T, permission notifier.Permission) *streamFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctrl := gomock.NewController(t)
	sessions := sessionmock.NewMockService(ctrl)
	f := &streamFixture{
		hub:      stream.NewHub(logger),
		inbox:    sessionmock.NewMockInbox(ctrl),
		userID:   uuid.New(),
		changes:  make(chan syncengine.Change, 8),
		statuses: make(chan connection.Snapshot, 8),
	}

	sessions.EXPECT().Inbox(f.userID).Return(f.inbox, nil).AnyTimes()
	f.inbox.EXPECT().Subscribe().Return((<-chan syncengine.Change)(f.changes), func() {}).AnyTimes()
	f.inbox.EXPECT().StatusUpdates().Return((<-chan connection.Snapshot)(f.statuses), func() {}).AnyTimes()
	f.inbox.EXPECT().Status().Return(connection.Snapshot{Status: connection.StatusConnected, Since: time.Unix(0, 0)}).AnyTimes()
	f.inbox.EXPECT().State().Return(syncengine.StateLive).AnyTimes()
	f.inbox.EXPECT().Permission().Return(permission).AnyTimes()
	f.inbox.EXPECT().UnreadCount().Return(1).AnyTimes()

	h := stream.NewHandler(f.hub, sessions, config.NewTestConfig(), logger)
	router := gin.New()
	router.GET("/ws", func(c *gin.Context) {
		c.Set("user_id", f.userID)
		h.Serve(c)
	})
	f.server = nethttptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *streamFixture) waitForClients(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return f.hub.Clients(f.userID) == n }, frameTimeout, 10*time.Millisecond)
}

func TestStream_StatusThenChanges(t *testing.T) {
	f := newStreamFixture(t, notifier.PermissionGranted)
	n := builder.NewNotificationBuilder().WithUserID(f.userID).BuildDomain()
	f.inbox.EXPECT().Notifications().Return([]notification.Notification{n}).AnyTimes()

	conn := httptest.DialStream(t, f.server, "/ws", "")
	status := httptest.ReadFrameOfType(t, conn, string(stream.FrameStatus), frameTimeout)
	var st resdto.StatusResponse
	require.NoError(t, json.Unmarshal(status.Data, &st))
	assert.Equal(t, "connected", st.Status)

	f.changes <- syncengine.Change{Kind: syncengine.ChangeCreated, ID: n.ID()}
	frame := httptest.ReadFrameOfType(t, conn, string(stream.FrameChange), frameTimeout)

	var data stream.ChangeData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.Equal(t, "created", data.Kind)
	assert.Equal(t, n.ID().String(), data.ID)
	assert.Equal(t, 1, data.UnreadCount)
	require.NotNil(t, data.Notification)
	assert.Equal(t, n.Message().String(), data.Notification.Message)
}

func TestStream_AlertsReachOpenClients(t *testing.T) {
	f := newStreamFixture(t, notifier.PermissionGranted)
	sink := f.hub.AlertSink(f.userID)

	err := sink.Alert(notifier.Alert{ID: uuid.New(), Title: "New job posted"})
	assert.True(t, errs.Is(err, errs.ErrNotifierUnavailable), "no client is open yet")

	conn := httptest.DialStream(t, f.server, "/ws", "")
	f.waitForClients(t, 1)

	alert := notifier.Alert{ID: uuid.New(), Type: "new-job", Title: "New job posted", Message: "Go backend"}
	require.NoError(t, sink.Alert(alert))

	frame := httptest.ReadFrameOfType(t, conn, string(stream.FrameAlert), frameTimeout)
	var got notifier.Alert
	require.NoError(t, json.Unmarshal(frame.Data, &got))
	assert.Equal(t, alert, got)
}

func TestStream_DeferredPermissionRequest(t *testing.T) {
	f := newStreamFixture(t, notifier.PermissionNotAsked)

	require.NoError(t, f.hub.RequestPermission(f.userID))

	conn := httptest.DialStream(t, f.server, "/ws", "")
	httptest.ReadFrameOfType(t, conn, string(stream.FramePermissionRequest), frameTimeout)
}

func TestStream_SessionEndClosesSocket(t *testing.T) {
	f := newStreamFixture(t, notifier.PermissionGranted)

	conn := httptest.DialStream(t, f.server, "/ws", "")
	f.waitForClients(t, 1)

	close(f.changes)

	f.waitForClients(t, 0)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(frameTimeout)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
