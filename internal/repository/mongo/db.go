package mongo

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// ConnectDB dials MongoDB and verifies the primary answers a ping.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), pingTimeout)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection. Failures are logged
// per collection; the first one is returned.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		collection string
		ensure     func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{mealCollectionName, EnsureMealIndexes},
		{workoutCollectionName, EnsureWorkoutIndexes},
		{bodyWeightCollectionName, EnsureBodyWeightIndexes},
		{notificationCollectionName, EnsureNotificationIndexes},
		{templateCollectionName, EnsureTemplateIndexes},
	}

	var firstErr error
	for _, s := range steps {
		if err := s.ensure(ctx, db.Collection(s.collection)); err != nil {
			log.Errorf("ensure indexes for %s: %s", s.collection, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s indexes: %w", s.collection, err)
			}
			continue
		}
		log.Debugf("indexes ensured for %s", s.collection)
	}
	return firstErr
}
