// internal/repository/mongo/workout_repo.go
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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Exercise == "" || workout.Date.IsZero() {
		return primitive.NilObjectID, errors.New("workout requires userId, exercise and date")
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByUserAndDateRange retrieves the user's workouts dated within [start, end].
func (r *mongoWorkoutRepository) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Workout, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

// ListRecentByUser returns the newest workouts first.
func (r *mongoWorkoutRepository) ListRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

// CountByUserAndDate counts the user's entries dated on day.
func (r *mongoWorkoutRepository) CountByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "date": day})
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Delete removes a workout, ensuring it belongs to the user.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	return err
}
