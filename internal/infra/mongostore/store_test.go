//go:build e2e

package mongostore_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra"
	"gigboard-notify/internal/infra/mongostore"
	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/tests/common/builder"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type StoreSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	db        *mongo.Database
	cleanup   func()
	clock     *clock.MockClock
	store     *mongostore.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupSuite() {
	s.ctx = context.Background()
	startCtx, cancel := context.WithTimeout(s.ctx, 3*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(startCtx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Tmpfs:        map[string]string{"/data/db": "rw,size=256m"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort(nat.Port("27017/tcp")),
			).WithDeadline(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	s.Require().NoError(err, "failed to start mongo container")
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "27017/tcp")
	s.Require().NoError(err)

	db, cleanup, err := mongostore.Connect(s.ctx, config.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "notify_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Timeout:  10 * time.Second,
	})
	s.Require().NoError(err)
	s.db = db
	s.cleanup = cleanup
}

func (s *StoreSuite) TearDownSuite() {
	if s.cleanup != nil {
		s.cleanup()
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.container.Terminate(ctx); err != nil {
			slog.Warn("failed to terminate mongo container", "error", err.Error())
		}
	}
}

func (s *StoreSuite) SetupTest() {
	s.Require().NoError(s.db.Collection("notifications").Drop(s.ctx))
	s.clock = clock.NewMockClock(base).Tick(time.Second)
	store, err := mongostore.New(s.ctx, s.db, s.clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreSuite) insert(b *builder.NotificationBuilder) notification.Notification {
	draft, err := b.BuildDraft()
	s.Require().NoError(err)
	n, err := s.store.Insert(s.ctx, draft)
	s.Require().NoError(err)
	return n
}

func (s *StoreSuite) TestLoadForUser_NewestFirstWithIDTieBreak() {
	userID := uuid.New()

	s.clock.Set(base)
	oldest := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.clock.Tick(0)
	s.clock.Set(base.Add(time.Minute))
	tieA := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	tieB := s.insert(builder.NewNotificationBuilder().WithUserID(userID).WithLink(nil).WithType(notification.TypeNewMessage))
	s.insert(builder.NewNotificationBuilder()) // another user

	got, err := s.store.LoadForUser(s.ctx, userID)
	s.Require().NoError(err)

	ties := []uuid.UUID{tieA.ID(), tieB.ID()}
	slices.SortFunc(ties, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	s.Equal(append(ties, oldest.ID()), builder.IDs(got))

	for _, n := range got {
		if n.ID() == tieB.ID() {
			s.True(n.Link().IsZero())
			s.Equal(notification.TypeNewMessage, n.Type())
		}
		s.False(n.IsRead())
	}
}

func (s *StoreSuite) TestInsert_TimestampTruncatedToMilliseconds() {
	userID := uuid.New()
	s.clock.Set(time.Date(2026, 3, 1, 9, 0, 0, 123456789, time.UTC))

	inserted := s.insert(builder.NewNotificationBuilder().WithUserID(userID))

	got, err := s.store.LoadForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(time.Date(2026, 3, 1, 9, 0, 0, 123000000, time.UTC), inserted.Timestamp())
	s.Equal(inserted.Timestamp(), got[0].Timestamp(), "insert returns what a reload sees")
	s.Equal("/jobs/42", got[0].Link().String())
}

func (s *StoreSuite) TestSetRead() {
	userID := uuid.New()
	a := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.insert(builder.NewNotificationBuilder().WithUserID(userID))

	s.Run("success: set read is idempotent", func() {
		s.Require().NoError(s.store.SetRead(s.ctx, userID, a.ID(), true))
		s.Require().NoError(s.store.SetRead(s.ctx, userID, a.ID(), true))

		unread, err := s.store.UnreadIDs(s.ctx, userID)
		s.Require().NoError(err)
		s.Len(unread, 1)
		s.NotContains(unread, a.ID())
	})

	s.Run("error: other owner cannot touch the row", func() {
		err := s.store.SetRead(s.ctx, uuid.New(), a.ID(), false)

		s.True(infra.IsKind(err, infra.KindNotFound))
		s.True(errs.Is(err, errs.ErrNotificationNotFound))
	})

	s.Run("error: unknown id is not found", func() {
		err := s.store.SetRead(s.ctx, userID, uuid.New(), true)

		s.True(errs.Is(err, errs.ErrNotificationNotFound))
	})
}

func (s *StoreSuite) TestSetAllRead_CountsOnlyChangedRows() {
	userID := uuid.New()
	a := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	other := s.insert(builder.NewNotificationBuilder())
	s.Require().NoError(s.store.SetRead(s.ctx, userID, a.ID(), true))

	changed, err := s.store.SetAllRead(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(int64(2), changed)

	changed, err = s.store.SetAllRead(s.ctx, userID)
	s.Require().NoError(err)
	s.Zero(changed)

	theirs, err := s.store.UnreadIDs(s.ctx, other.UserID())
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{other.ID()}, theirs, "other users are untouched")
}

func (s *StoreSuite) TestDelete_ScopedToOwner() {
	userID, otherID := uuid.New(), uuid.New()
	a := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	other := s.insert(builder.NewNotificationBuilder().WithUserID(otherID))

	s.Require().NoError(s.store.Delete(s.ctx, otherID, a.ID()), "foreign delete is a silent no-op")
	mine, err := s.store.LoadForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Len(mine, 2)

	s.Require().NoError(s.store.Delete(s.ctx, userID, a.ID()))
	s.Require().NoError(s.store.Delete(s.ctx, userID, a.ID()), "missing row is not an error")

	deleted, err := s.store.DeleteAllForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)

	mine, err = s.store.LoadForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Empty(mine)

	theirs, err := s.store.LoadForUser(s.ctx, otherID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{other.ID()}, builder.IDs(theirs))
}

func (s *StoreSuite) TestUnreadIDs_NewestFirst() {
	userID := uuid.New()
	first := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	read := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	last := s.insert(builder.NewNotificationBuilder().WithUserID(userID))
	s.Require().NoError(s.store.SetRead(s.ctx, userID, read.ID(), true))

	ids, err := s.store.UnreadIDs(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{last.ID(), first.ID()}, ids)

	none, err := s.store.UnreadIDs(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Empty(none)
}
