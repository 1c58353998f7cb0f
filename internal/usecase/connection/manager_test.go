//go:build unit

package connection_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/usecase/connection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() (*connection.Manager, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)).Tick(time.Second)
	return connection.NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)), clk), clk
}

func TestManager_Transitions(t *testing.T) {
	m, _ := newManager()

	assert.Equal(t, connection.StatusDisconnected, m.Status())
	assert.False(t, m.IsConnected())

	m.Set(connection.StatusConnecting, nil)
	assert.False(t, m.IsConnected())

	m.Set(connection.StatusConnected, nil)
	assert.True(t, m.IsConnected())
	assert.NoError(t, m.Err())

	cause := errors.New("socket reset")
	m.Set(connection.StatusDisconnected, cause)
	assert.False(t, m.IsConnected())
	assert.Equal(t, cause, m.Err())
	assert.Equal(t, "socket reset", m.Snapshot().Err)
}

func TestManager_Subscribe(t *testing.T) {
	t.Run("receives current state then transitions", func(t *testing.T) {
		m, _ := newManager()
		ch, unsubscribe := m.Subscribe()
		defer unsubscribe()

		first := <-ch
		assert.Equal(t, connection.StatusDisconnected, first.Status)

		m.Set(connection.StatusConnected, nil)
		next := <-ch
		assert.Equal(t, connection.StatusConnected, next.Status)
		assert.True(t, next.Since.After(first.Since))
	})

	t.Run("repeated status is not re-published", func(t *testing.T) {
		m, _ := newManager()
		ch, unsubscribe := m.Subscribe()
		defer unsubscribe()
		<-ch

		m.Set(connection.StatusConnected, nil)
		<-ch
		m.Set(connection.StatusConnected, nil)

		select {
		case s := <-ch:
			t.Fatalf("unexpected snapshot %+v", s)
		default:
		}
	})

	t.Run("slow reader sees latest value only", func(t *testing.T) {
		m, _ := newManager()
		ch, unsubscribe := m.Subscribe()
		defer unsubscribe()

		m.Set(connection.StatusConnecting, nil)
		m.Set(connection.StatusConnected, nil)
		m.Set(connection.StatusError, errors.New("load failed"))

		got := <-ch
		assert.Equal(t, connection.StatusError, got.Status)
		assert.Equal(t, "load failed", got.Err)
	})

	t.Run("unsubscribe closes the channel and is repeatable", func(t *testing.T) {
		m, _ := newManager()
		ch, unsubscribe := m.Subscribe()
		<-ch
		unsubscribe()
		unsubscribe()

		_, open := <-ch
		assert.False(t, open)
	})
}

func TestManager_Close(t *testing.T) {
	m, _ := newManager()
	ch, _ := m.Subscribe()
	<-ch
	m.Set(connection.StatusConnected, nil)

	m.Close()
	m.Close()

	assert.Equal(t, connection.StatusDisconnected, m.Status())
	m.Set(connection.StatusConnected, nil)
	assert.False(t, m.IsConnected())

	// drain the pending transition, then the channel must be closed
	for range ch {
	}
	late, _ := m.Subscribe()
	_, open := <-late
	require.False(t, open)
}
