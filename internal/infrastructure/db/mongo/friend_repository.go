package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/socialnet/friends-api/internal/core/domain"
)

const (
	requestsCollection = "friend_requests"
	friendsCollection  = "friends"
)

// MongoFriendRepository owns the friend_requests and friends collections.
type MongoFriendRepository struct {
	requests *mongo.Collection
	friends  *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *MongoFriendRepository {
	return &MongoFriendRepository{
		requests: db.Collection(requestsCollection),
		friends:  db.Collection(friendsCollection),
	}
}

type mongoRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FromUserID string             `bson:"from_user_id"`
	ToUserID   string             `bson:"to_user_id"`
	CreatedAt  time.Time          `bson:"created_at"`
	Accepted   bool               `bson:"accepted"`
	AcceptedAt *time.Time         `bson:"accepted_at,omitempty"`
	Rejected   bool               `bson:"rejected"`
	RejectedAt *time.Time         `bson:"rejected_at,omitempty"`
}

type mongoFriendship struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Friend1ID string             `bson:"friend1_id"`
	Friend2ID string             `bson:"friend2_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mr *mongoRequest) toDomain() *domain.FriendRequest {
	return &domain.FriendRequest{
		ID:         mr.ID.Hex(),
		FromUserID: mr.FromUserID,
		ToUserID:   mr.ToUserID,
		CreatedAt:  mr.CreatedAt,
		Accepted:   mr.Accepted,
		AcceptedAt: mr.AcceptedAt,
		Rejected:   mr.Rejected,
		RejectedAt: mr.RejectedAt,
	}
}

func (r *MongoFriendRepository) CreateRequest(ctx context.Context, req *domain.FriendRequest) (*domain.FriendRequest, error) {
	doc := mongoRequest{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		CreatedAt:  req.CreatedAt,
	}

	res, err := r.requests.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("insert friend request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// HasOpenRequest reports whether a non-rejected request exists between the
// two users, in either direction.
func (r *MongoFriendRepository) HasOpenRequest(ctx context.Context, userA, userB string) (bool, error) {
	filter := bson.M{
		"rejected": false,
		"$or": bson.A{
			bson.M{"from_user_id": userA, "to_user_id": userB},
			bson.M{"from_user_id": userB, "to_user_id": userA},
		},
	}

	n, err := r.requests.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("check open request: %w", err)
	}
	return n > 0, nil
}

func (r *MongoFriendRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"friend1_id": userA, "friend2_id": userB},
			bson.M{"friend1_id": userB, "friend2_id": userA},
		},
	}

	n, err := r.friends.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return n > 0, nil
}

// AcceptRequest flips a pending request to accepted. The filter doubles as
// the authorization and terminal-state guard: it matches only when the
// recipient owns the request and neither terminal flag is set, so a raced
// or replayed accept finds nothing to update.
func (r *MongoFriendRepository) AcceptRequest(ctx context.Context, requestID, recipientID string, at time.Time) (*domain.FriendRequest, error) {
	return r.resolveRequest(ctx, requestID, recipientID, bson.M{
		"$set": bson.M{"accepted": true, "accepted_at": at},
	})
}

// RejectRequest is the rejected-terminal counterpart of AcceptRequest.
func (r *MongoFriendRepository) RejectRequest(ctx context.Context, requestID, recipientID string, at time.Time) (*domain.FriendRequest, error) {
	return r.resolveRequest(ctx, requestID, recipientID, bson.M{
		"$set": bson.M{"rejected": true, "rejected_at": at},
	})
}

func (r *MongoFriendRepository) resolveRequest(ctx context.Context, requestID, recipientID string, update bson.M) (*domain.FriendRequest, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	filter := bson.M{
		"_id":        oid,
		"to_user_id": recipientID,
		"accepted":   false,
		"rejected":   false,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRequest
	if err := r.requests.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("resolve friend request: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *MongoFriendRepository) CreateFriendship(ctx context.Context, f *domain.Friendship) error {
	doc := mongoFriendship{
		Friend1ID: f.Friend1ID,
		Friend2ID: f.Friend2ID,
		CreatedAt: f.CreatedAt,
	}

	if _, err := r.friends.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Friendship already recorded; accept stays idempotent here.
			return nil
		}
		return fmt.Errorf("insert friendship: %w", err)
	}
	return nil
}

// FriendIDs returns the deduplicated counterpart ids of every friendship
// the user appears in, on either side.
func (r *MongoFriendRepository) FriendIDs(ctx context.Context, userID string) ([]string, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"friend1_id": userID},
			bson.M{"friend2_id": userID},
		},
	}

	cur, err := r.friends.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}
	defer cur.Close(ctx)

	seen := make(map[string]struct{})
	var ids []string
	for cur.Next(ctx) {
		var mf mongoFriendship
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode friendship: %w", err)
		}
		f := domain.Friendship{Friend1ID: mf.Friend1ID, Friend2ID: mf.Friend2ID}
		counterpart := f.CounterpartID(userID)
		if counterpart == "" {
			continue
		}
		if _, ok := seen[counterpart]; ok {
			continue
		}
		seen[counterpart] = struct{}{}
		ids = append(ids, counterpart)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate friendships: %w", err)
	}
	return ids, nil
}

// ListPending returns one page of pending requests involving the user,
// newest first, plus the total pending count.
func (r *MongoFriendRepository) ListPending(ctx context.Context, userID string, page, limit int) ([]*domain.FriendRequest, int64, error) {
	filter := bson.M{
		"accepted": false,
		"rejected": false,
		"$or": bson.A{
			bson.M{"from_user_id": userID},
			bson.M{"to_user_id": userID},
		},
	}

	total, err := r.requests.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count pending requests: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending requests: %w", err)
	}
	defer cur.Close(ctx)

	var requests []*domain.FriendRequest
	for cur.Next(ctx) {
		var mr mongoRequest
		if err := cur.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode friend request: %w", err)
		}
		requests = append(requests, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate pending requests: %w", err)
	}
	return requests, total, nil
}
