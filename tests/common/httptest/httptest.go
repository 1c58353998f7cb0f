//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// executes HTTP request with optional authorization
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequestWithCookies(t, router, method, path, body, nil, authToken)
}

// performs HTTP request with cookies support
func PerformRequestWithCookies(t *testing.T, router *gin.Engine, method, path string, body any, cookies []*http.Cookie, authToken string) *httptest.ResponseRecorder {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to encode request body to JSON")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// DialStream opens the WebSocket at path on a live test server, passing the
// token as a query parameter the way browsers do.
func DialStream(t *testing.T, server *httptest.Server, path, token string) *websocket.Conn {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = path
	if token != "" {
		u.RawQuery = url.Values{"token": {token}}.Encode()
	}

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	require.NoError(t, err, "Failed to open websocket")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// StreamFrame is the decoded shape of one event stream message.
type StreamFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReadFrameOfType reads frames until one of type frameType arrives.
func ReadFrameOfType(t *testing.T, conn *websocket.Conn, frameType string, timeout time.Duration) StreamFrame {
	t.Helper()

	deadline := time.Now().Add(timeout)
	require.NoError(t, conn.SetReadDeadline(deadline))
	for {
		var f StreamFrame
		require.NoError(t, conn.ReadJSON(&f), "no %q frame before the deadline", frameType)
		if f.Type == frameType {
			return f
		}
	}
}
