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

const mealCollectionName = "meals"

// mongoMealRepository implements repository.MealRepository
type mongoMealRepository struct {
	collection *mongo.Collection
}

// NewMongoMealRepository creates a new Meal repository.
func NewMongoMealRepository(db *mongo.Database) repository.MealRepository {
	return &mongoMealRepository{
		collection: db.Collection(mealCollectionName),
	}
}

// Create inserts a new meal.
func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	if meal.UserID == primitive.NilObjectID || meal.Name == "" || meal.Date.IsZero() {
		return primitive.NilObjectID, errors.New("meal requires userId, name and date")
	}
	meal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted meal ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single meal by its ID.
func (r *mongoMealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// ListByUserAndDateRange retrieves the user's meals dated within [start, end].
func (r *mongoMealRepository) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Meal, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": start, "$lte": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})
	return r.find(ctx, filter, findOptions)
}

// ListRecentByUser returns the newest meals first.
func (r *mongoMealRepository) ListRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Meal, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

// CountByUserAndDate counts the user's entries dated on day.
func (r *mongoMealRepository) CountByUserAndDate(ctx context.Context, userID primitive.ObjectID, day time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "date": day})
}

func (r *mongoMealRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Meal, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	meals := []domain.Meal{}
	if err = cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// Update rewrites the nutrition fields of a meal owned by meal.UserID.
func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == primitive.NilObjectID {
		return errors.New("meal ID is required for update")
	}

	filter := bson.M{"_id": meal.ID, "userId": meal.UserID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      meal.Name,
			"calories":  meal.Calories,
			"proteinG":  meal.ProteinG,
			"carbsG":    meal.CarbsG,
			"fatsG":     meal.FatsG,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a meal, ensuring it belongs to the user.
func (r *mongoMealRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMealIndexes creates necessary indexes. Call during startup.
func EnsureMealIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
	})
	return err
}
