package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musclemania/gym-catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Server error codes returned when the connected user lacks privileges.
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
)

// ConnectDB establishes a connection to MongoDB using the provided URI.
// Batch writes use multi-document transactions, so the server must run as a
// replica set (a single-node replica set is enough).
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, classify(err)
	}

	// Ping the primary so a bad URI fails here and not on the first request.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, classify(err)
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on. Failures are
// logged and do not stop the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	indexes := map[string][]mongo.IndexModel{
		repository.UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		repository.CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		repository.EquipmentCollection: {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
		},
		repository.WorkoutHistoryCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			logger.Warn("Failed to create indexes", zap.String("collection", name), zap.Error(err))
		}
	}
}

// newID issues a document ID. IDs are stored as hex strings so they look the
// same to API clients regardless of the store driver.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// classify maps driver errors onto the repository error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.Classify(repository.ErrAlreadyExists, err)
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && (serverErr.HasErrorCode(codeUnauthorized) || serverErr.HasErrorCode(codeAuthenticationFailed)) {
		return repository.Classify(repository.ErrPermissionDenied, err)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return repository.Classify(repository.ErrUnavailable, err)
	}
	return err
}

// idString renders an _id value read from the database.
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}
