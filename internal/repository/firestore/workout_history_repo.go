package firestore

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
)

// firestoreWorkoutHistoryRepository stores sessions in users/{uid}/workoutHistory.
type firestoreWorkoutHistoryRepository struct {
	users *firestore.CollectionRef
}

// NewFirestoreWorkoutHistoryRepository creates a workout history repository backed by Firestore.
func NewFirestoreWorkoutHistoryRepository(client *firestore.Client) repository.WorkoutHistoryRepository {
	return &firestoreWorkoutHistoryRepository{
		users: client.Collection(repository.UsersCollection),
	}
}

func (r *firestoreWorkoutHistoryRepository) history(userID string) *firestore.CollectionRef {
	return r.users.Doc(userID).Collection(repository.WorkoutHistoryCollection)
}

func (r *firestoreWorkoutHistoryRepository) Create(ctx context.Context, session *domain.WorkoutSession) (string, error) {
	if session.UserID == "" || session.EquipmentID == "" {
		return "", errors.New("workout session requires userId and equipmentId")
	}
	ref := r.history(session.UserID).NewDoc()
	if _, err := ref.Create(ctx, session); err != nil {
		return "", classify(err)
	}
	session.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreWorkoutHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutSession, error) {
	snaps, err := r.history(userID).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, classify(err)
	}

	sessions := make([]domain.WorkoutSession, 0, len(snaps))
	for _, snap := range snaps {
		var s domain.WorkoutSession
		if err := snap.DataTo(&s); err != nil {
			return nil, err
		}
		s.ID = snap.Ref.ID
		sessions = append(sessions, s)
	}
	return sessions, nil
}
