package mongo

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoWorkoutHistoryRepository keeps all sessions in one collection keyed by userId.
type mongoWorkoutHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutHistoryRepository creates a new workout history repository.
func NewMongoWorkoutHistoryRepository(db *mongo.Database) repository.WorkoutHistoryRepository {
	return &mongoWorkoutHistoryRepository{
		collection: db.Collection(repository.WorkoutHistoryCollection),
	}
}

// Create stores a finished session.
func (r *mongoWorkoutHistoryRepository) Create(ctx context.Context, session *domain.WorkoutSession) (string, error) {
	if session.UserID == "" || session.EquipmentID == "" {
		return "", errors.New("workout session requires userId and equipmentId")
	}
	session.ID = newID()

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return "", classify(err)
	}
	return session.ID, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *mongoWorkoutHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutSession, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	sessions := []domain.WorkoutSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, classify(err)
	}
	return sessions, nil
}
