package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
)

type firestoreUserRepository struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// NewFirestoreUserRepository creates a User repository backed by Firestore.
func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client:     client,
		collection: client.Collection(repository.UsersCollection),
	}
}

// Create stores a new user. Firestore has no unique indexes, so the email
// check and the insert share one transaction.
func (r *firestoreUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return "", errors.New("user email, password hash, and role are required")
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	ref := r.collection.NewDoc()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(r.collection.Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("email %s: %w", user.Email, repository.ErrAlreadyExists)
		}
		return tx.Create(ref, user)
	}, firestore.MaxAttempts(1))
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return "", err
		}
		return "", classify(err)
	}

	user.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	snaps, err := r.collection.Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, classify(err)
	}
	if len(snaps) == 0 {
		return nil, repository.ErrNotFound
	}
	return decodeUser(snaps[0])
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return decodeUser(snap)
}

func decodeUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var u domain.User
	if err := snap.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = snap.Ref.ID
	return &u, nil
}
