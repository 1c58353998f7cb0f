//go:build unit

package channel_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra/channel"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"
	"gigboard-notify/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *repoMock) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(notification.Notification), args.Error(1)
}

func (m *repoMock) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	return m.Called(ctx, userID, id, isRead).Error(0)
}

func (m *repoMock) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *repoMock) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type listingRepoMock struct {
	repoMock
}

func (m *listingRepoMock) UnreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type published struct {
	UserID uuid.UUID
	Kind   shared.EventKind
	ID     uuid.UUID
	Batch  []uuid.UUID
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID uuid.UUID, ev shared.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rec := published{UserID: userID, Kind: ev.Kind, ID: ev.Update.ID}
	switch ev.Kind {
	case shared.EventCreated:
		rec.ID = ev.Notification.ID()
	case shared.EventUpdatedBatch:
		for _, u := range ev.Updates {
			rec.Batch = append(rec.Batch, u.ID)
		}
	}
	p.events = append(p.events, rec)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestPublishingRepository_Insert(t *testing.T) {
	ctx := context.Background()
	b := builder.NewNotificationBuilder()
	draft, err := b.BuildDraft()
	require.NoError(t, err)
	stored := b.BuildDomain()

	t.Run("success: publishes created to the owner", func(t *testing.T) {
		repo := new(repoMock)
		pub := &recordingPublisher{}
		repo.On("Insert", ctx, draft).Return(stored, nil)

		got, err := channel.NewPublishingRepository(repo, pub, discard()).Insert(ctx, draft)

		require.NoError(t, err)
		assert.Equal(t, stored.ID(), got.ID())
		assert.Empty(t, cmp.Diff([]published{{UserID: b.UserID, Kind: shared.EventCreated, ID: stored.ID()}}, pub.events))
		repo.AssertExpectations(t)
	})

	t.Run("error: nothing is published", func(t *testing.T) {
		repo := new(repoMock)
		pub := &recordingPublisher{}
		repo.On("Insert", ctx, draft).Return(notification.Notification{}, errs.Mark(errors.New("disk full"), errs.ErrWriteRejected))

		_, err := channel.NewPublishingRepository(repo, pub, discard()).Insert(ctx, draft)

		assert.True(t, errs.Is(err, errs.ErrWriteRejected))
		assert.Empty(t, pub.events)
	})
}

func TestPublishingRepository_SetRead(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()

	repo := new(repoMock)
	pub := &recordingPublisher{}
	repo.On("SetRead", ctx, userID, id, true).Return(nil).Once()
	repo.On("SetRead", ctx, userID, id, false).Return(errs.ErrWriteRejected).Once()
	r := channel.NewPublishingRepository(repo, pub, discard())

	require.NoError(t, r.SetRead(ctx, userID, id, true))
	require.Error(t, r.SetRead(ctx, userID, id, false))

	assert.Empty(t, cmp.Diff([]published{{UserID: userID, Kind: shared.EventUpdated, ID: id}}, pub.events))
	repo.AssertExpectations(t)
}

func TestPublishingRepository_SetAllRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	a, b := uuid.New(), uuid.New()

	t.Run("success: unread ids are published as one batch", func(t *testing.T) {
		repo := new(listingRepoMock)
		pub := &recordingPublisher{}
		repo.On("UnreadIDs", ctx, userID).Return([]uuid.UUID{a, b}, nil)
		repo.On("SetAllRead", ctx, userID).Return(int64(2), nil)

		changed, err := channel.NewPublishingRepository(repo, pub, discard()).SetAllRead(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), changed)
		assert.Empty(t, cmp.Diff([]published{
			{UserID: userID, Kind: shared.EventUpdatedBatch, Batch: []uuid.UUID{a, b}},
		}, pub.events))
	})

	t.Run("success: nothing unread publishes nothing", func(t *testing.T) {
		repo := new(listingRepoMock)
		pub := &recordingPublisher{}
		repo.On("UnreadIDs", ctx, userID).Return([]uuid.UUID{}, nil)
		repo.On("SetAllRead", ctx, userID).Return(int64(0), nil)

		_, err := channel.NewPublishingRepository(repo, pub, discard()).SetAllRead(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, pub.events)
	})

	t.Run("success: stores without listing publish nothing", func(t *testing.T) {
		repo := new(repoMock)
		pub := &recordingPublisher{}
		repo.On("SetAllRead", ctx, userID).Return(int64(4), nil)

		changed, err := channel.NewPublishingRepository(repo, pub, discard()).SetAllRead(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, int64(4), changed)
		assert.Empty(t, pub.events)
	})

	t.Run("error: write failure publishes nothing", func(t *testing.T) {
		repo := new(listingRepoMock)
		pub := &recordingPublisher{}
		repo.On("UnreadIDs", ctx, userID).Return([]uuid.UUID{a}, nil)
		repo.On("SetAllRead", ctx, userID).Return(int64(0), errs.ErrStorageUnavailable)

		_, err := channel.NewPublishingRepository(repo, pub, discard()).SetAllRead(ctx, userID)

		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable))
		assert.Empty(t, pub.events)
	})
}

func TestPublishingRepository_PassThrough(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()
	repo := new(repoMock)
	pub := &recordingPublisher{}
	repo.On("Delete", ctx, userID, id).Return(nil)
	repo.On("DeleteAllForUser", ctx, userID).Return(int64(3), nil)
	repo.On("LoadForUser", ctx, userID).Return([]notification.Notification{}, nil)
	r := channel.NewPublishingRepository(repo, pub, discard())

	require.NoError(t, r.Delete(ctx, userID, id))
	n, err := r.DeleteAllForUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	_, err = r.LoadForUser(ctx, userID)
	require.NoError(t, err)

	assert.Empty(t, pub.events, "deletes never travel over the channel")
	repo.AssertExpectations(t)
}
