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

const templateCollectionName = "log_templates"

type mongoTemplateRepository struct {
	collection *mongo.Collection
}

func NewMongoTemplateRepository(db *mongo.Database) repository.TemplateRepository {
	return &mongoTemplateRepository{
		collection: db.Collection(templateCollectionName),
	}
}

// Create stores a template. The shape is validated before it reaches the
// collection, so documents are always fully populated.
func (r *mongoTemplateRepository) Create(ctx context.Context, t *domain.LogTemplate) (primitive.ObjectID, error) {
	if t.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("template requires userId")
	}
	if err := t.Validate(); err != nil {
		return primitive.NilObjectID, err
	}
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return t.ID, nil
}

func (r *mongoTemplateRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.LogTemplate, error) {
	var t domain.LogTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByUser lists templates, optionally restricted to one kind.
func (r *mongoTemplateRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, kind domain.TemplateKind) ([]domain.LogTemplate, error) {
	filter := bson.M{"userId": userID}
	if kind != "" {
		filter["kind"] = kind
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "label", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	templates := []domain.LogTemplate{}
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *mongoTemplateRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTemplateIndexes keeps labels unique per user and kind.
func EnsureTemplateIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "kind", Value: 1}, {Key: "label", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
