package mongostore

import (
	"context"
	"log/slog"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra"
	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "notifications"

type document struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Type      string    `bson:"type"`
	Message   string    `bson:"message"`
	Link      *string   `bson:"link,omitempty"`
	IsRead    bool      `bson:"is_read"`
	CreatedAt time.Time `bson:"created_at"`
}

// Store keeps notifications in a MongoDB collection. Like the SQLite store it
// does not publish change events itself.
type Store struct {
	collection *mongo.Collection
	clock      clock.Clock
	logger     *slog.Logger
}

// Connect dials MongoDB, verifies the connection and returns the database
// handle together with a cleanup func.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, func(), error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, errs.Wrap(err, "connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, errs.Wrap(err, "pinging mongo")
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		_ = client.Disconnect(ctx)
	}
	return client.Database(cfg.Database), cleanup, nil
}

// New binds the store to db and makes sure the inbox index exists.
func New(ctx context.Context, db *mongo.Database, clk clock.Clock, logger *slog.Logger) (*Store, error) {
	s := &Store{
		collection: db.Collection(collectionName),
		clock:      clk,
		logger:     logger.With("component", "mongo_repository"),
	}

	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_inbox"),
	})
	if err != nil {
		return nil, errs.Wrap(err, "creating inbox index")
	}
	return s, nil
}

func (s *Store) LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to load notifications", err)
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to decode notifications", err)
	}

	out := make([]notification.Notification, 0, len(docs))
	for _, d := range docs {
		n, err := d.toDomain()
		if err != nil {
			s.logger.Warn("skipping unreadable notification document", "notification_id", d.ID, "error", err)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	// BSON dates keep milliseconds; truncate so the returned value matches
	// what a later load reads back.
	n := draft.Materialize(uuid.Nil, s.clock.Now().UTC().Truncate(time.Millisecond))
	if _, err := s.collection.InsertOne(ctx, fromDomain(n)); err != nil {
		return notification.Notification{}, infra.WrapWriteErr(s.logger, classify(err), "failed to insert notification", err)
	}
	return n, nil
}

func (s *Store) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id.String(), "user_id": userID.String()},
		bson.M{"$set": bson.M{"is_read": isRead}})
	if err != nil {
		return infra.WrapRepoErr(s.logger, classify(err), "failed to update read flag", err)
	}
	if res.MatchedCount == 0 {
		return errs.Mark(infra.WrapRepoErr(s.logger, infra.KindNotFound, "notification not found", nil), errs.ErrNotificationNotFound)
	}
	return nil
}

func (s *Store) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.collection.UpdateMany(ctx,
		bson.M{"user_id": userID.String(), "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, classify(err), "failed to mark all notifications read", err)
	}
	return res.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id.String(), "user_id": userID.String()}); err != nil {
		return infra.WrapRepoErr(s.logger, classify(err), "failed to delete notification", err)
	}
	return nil
}

func (s *Store) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.collection.DeleteMany(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, classify(err), "failed to delete notifications", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) UnreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID.String(), "is_read": false}, opts)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to list unread notifications", err)
	}
	defer cursor.Close(ctx)

	var ids []uuid.UUID
	for cursor.Next(ctx) {
		var d struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&d); err != nil {
			continue
		}
		if id, err := uuid.Parse(d.ID); err == nil {
			ids = append(ids, id)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to list unread notifications", err)
	}
	return ids, nil
}

func fromDomain(n notification.Notification) document {
	return document{
		ID:        n.ID().String(),
		UserID:    n.UserID().String(),
		Type:      n.Type().String(),
		Message:   n.Message().String(),
		Link:      n.Link().Ptr(),
		IsRead:    n.IsRead(),
		CreatedAt: n.Timestamp(),
	}
}

func (d document) toDomain() (notification.Notification, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return notification.Notification{}, errs.Wrap(err, "_id")
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return notification.Notification{}, errs.Wrap(err, "user_id")
	}
	return notification.Reconstruct(id, userID, d.Type, d.Message, d.Link, d.CreatedAt.UTC(), d.IsRead)
}
