package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialnet/friends-api/internal/core/domain"
)

const notificationsCollection = "notifications"

type MongoNotificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{coll: db.Collection(notificationsCollection)}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	doc := bson.M{
		"user_id":    n.UserID,
		"actor_id":   n.ActorID,
		"kind":       n.Kind,
		"message":    n.Message,
		"created_at": n.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Notification
	for cur.Next(ctx) {
		var doc struct {
			ID        primitive.ObjectID      `bson:"_id"`
			UserID    string                  `bson:"user_id"`
			ActorID   string                  `bson:"actor_id"`
			Kind      domain.NotificationKind `bson:"kind"`
			Message   string                  `bson:"message"`
			CreatedAt primitive.DateTime      `bson:"created_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode notification: %w", err)
		}
		items = append(items, &domain.Notification{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			ActorID:   doc.ActorID,
			Kind:      doc.Kind,
			Message:   doc.Message,
			CreatedAt: doc.CreatedAt.Time().UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate notifications: %w", err)
	}
	return items, total, nil
}
