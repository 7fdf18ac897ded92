package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationCollectionName = "notifications"

// mongoNotificationRepository implements repository.NotificationRepository
type mongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new Notification repository.
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	return &mongoNotificationRepository{
		collection: db.Collection(notificationCollectionName),
	}
}

// Create inserts a new unread notification.
func (r *mongoNotificationRepository) Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error) {
	if n.UserID == primitive.NilObjectID || n.Message == "" {
		return primitive.NilObjectID, errors.New("notification requires userId and message")
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Read = false
	n.ReadAt = nil

	if _, err := r.collection.InsertOne(ctx, n); err != nil {
		return primitive.NilObjectID, err
	}
	return n.ID, nil
}

// containsFilter matches a literal substring of the message.
func containsFilter(userID primitive.ObjectID, substr string, from, to time.Time) bson.M {
	return bson.M{
		"userId":    userID,
		"message":   primitive.Regex{Pattern: regexp.QuoteMeta(substr)},
		"createdAt": bson.M{"$gte": from, "$lt": to},
	}
}

func (r *mongoNotificationRepository) FindOneContaining(ctx context.Context, userID primitive.ObjectID, substr string, from, to time.Time) (*domain.Notification, error) {
	var n domain.Notification
	err := r.collection.FindOne(ctx, containsFilter(userID, substr, from, to)).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *mongoNotificationRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Notification, error) {
	var n domain.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// ListByUser returns all of the user's notifications, newest first.
func (r *mongoNotificationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListUnread returns unread notifications, newest first.
func (r *mongoNotificationRepository) ListUnread(ctx context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	return r.list(ctx, bson.M{"userId": userID, "read": false})
}

func (r *mongoNotificationRepository) list(ctx context.Context, filter bson.M) ([]domain.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []domain.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
}

// MarkRead flips the flag only while it is still false, so ReadAt keeps the
// first time the message was seen.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id, userID primitive.ObjectID, at time.Time) error {
	filter := bson.M{"_id": id, "userId": userID, "read": false}
	update := bson.M{"$set": bson.M{"read": true, "readAt": at.UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either missing or already read; tell them apart.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id, "userId": userID})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
	}
	return nil
}

func (r *mongoNotificationRepository) MarkAllRead(ctx context.Context, userID primitive.ObjectID, at time.Time) (int64, error) {
	filter := bson.M{"userId": userID, "read": false}
	update := bson.M{"$set": bson.M{"read": true, "readAt": at.UTC()}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *mongoNotificationRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoNotificationRepository) DeleteMany(ctx context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	filter := bson.M{"userId": userID}
	if len(ids) > 0 {
		filter["_id"] = bson.M{"$in": ids}
	}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureNotificationIndexes creates necessary indexes. Call during startup.
func EnsureNotificationIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// inbox listing and dedup lookups
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "read", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
