package firestore

import (
	"context"

	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
)

// firestoreSeedStore implements repository.SeedStore on a Firestore client.
type firestoreSeedStore struct {
	client *firestore.Client
}

// NewFirestoreSeedStore creates the seeding store for client.
func NewFirestoreSeedStore(client *firestore.Client) repository.SeedStore {
	return &firestoreSeedStore{client: client}
}

func (s *firestoreSeedStore) QueryFirst(ctx context.Context, collection string, limit int) ([]string, error) {
	snaps, err := s.client.Collection(collection).Select().Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, classify(err)
	}
	ids := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		ids = append(ids, snap.Ref.ID)
	}
	return ids, nil
}

// AllocateID generates a Firestore auto-ID locally; nothing is written.
func (s *firestoreSeedStore) AllocateID(collection string) string {
	return s.client.Collection(collection).NewDoc().ID
}

// BatchWrite creates every record in a single transaction. Create fails when
// the document exists, which aborts the whole transaction. The transaction is
// attempted once.
func (s *firestoreSeedStore) BatchWrite(ctx context.Context, writes []repository.Write) error {
	if len(writes) == 0 {
		return nil
	}
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, w := range writes {
			if err := tx.Create(s.client.Collection(w.Collection).Doc(w.ID), w.Record); err != nil {
				return err
			}
		}
		return nil
	}, firestore.MaxAttempts(1))
	return classify(err)
}
