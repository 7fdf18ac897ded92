package mongo

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bodyWeightCollectionName = "body_weights"

type mongoBodyWeightRepository struct {
	collection *mongo.Collection
}

func NewMongoBodyWeightRepository(db *mongo.Database) repository.BodyWeightRepository {
	return &mongoBodyWeightRepository{
		collection: db.Collection(bodyWeightCollectionName),
	}
}

func (r *mongoBodyWeightRepository) Create(ctx context.Context, bw *domain.BodyWeight) (primitive.ObjectID, error) {
	if bw.UserID == primitive.NilObjectID || bw.Date.IsZero() {
		return primitive.NilObjectID, errors.New("body weight requires userId and date")
	}
	bw.ID = primitive.NewObjectID()
	bw.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, bw); err != nil {
		return primitive.NilObjectID, err
	}
	return bw.ID, nil
}

// Latest returns the most recent measurement by date, then by insertion.
func (r *mongoBodyWeightRepository) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyWeight, error) {
	var bw domain.BodyWeight
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&bw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &bw, nil
}

func (r *mongoBodyWeightRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.BodyWeight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	weights := []domain.BodyWeight{}
	if err = cursor.All(ctx, &weights); err != nil {
		return nil, err
	}
	return weights, nil
}

func EnsureBodyWeightIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
