package firestore

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
)

type firestoreEquipmentRepository struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// NewFirestoreEquipmentRepository creates an Equipment repository backed by Firestore.
func NewFirestoreEquipmentRepository(client *firestore.Client) repository.EquipmentRepository {
	return &firestoreEquipmentRepository{
		client:     client,
		collection: client.Collection(repository.EquipmentCollection),
	}
}

func (r *firestoreEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (string, error) {
	if equipment.Name == "" || equipment.CategoryID == "" {
		return "", errors.New("equipment name and category ID are required")
	}
	ref := r.collection.NewDoc()
	if _, err := ref.Create(ctx, equipment); err != nil {
		return "", classify(err)
	}
	equipment.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return decodeEquipment(snap)
}

func (r *firestoreEquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	return r.getAll(ctx, r.collection.Query)
}

// ListByCategory filters on categoryId only; ordering happens in the service
// so no composite index is needed.
func (r *firestoreEquipmentRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Equipment, error) {
	return r.getAll(ctx, r.collection.Where("categoryId", "==", categoryID))
}

func (r *firestoreEquipmentRepository) getAll(ctx context.Context, q firestore.Query) ([]domain.Equipment, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, classify(err)
	}
	list := make([]domain.Equipment, 0, len(snaps))
	for _, snap := range snaps {
		e, err := decodeEquipment(snap)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, nil
}

func (r *firestoreEquipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.ID == "" {
		return errors.New("equipment ID is required for update")
	}
	_, err := r.collection.Doc(equipment.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: equipment.Name},
		{Path: "imageUrl", Value: equipment.ImageURL},
		{Path: "info", Value: equipment.Info},
		{Path: "videoUrl", Value: equipment.VideoURL},
		{Path: "type", Value: string(equipment.Type)},
		{Path: "categoryId", Value: equipment.CategoryID},
		{Path: "categoryName", Value: equipment.CategoryName},
	})
	return classify(err)
}

func (r *firestoreEquipmentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.Doc(id).Delete(ctx, firestore.Exists)
	return classify(err)
}

// RenameCategory rewrites categoryName on every referencing record in one transaction.
func (r *firestoreEquipmentRepository) RenameCategory(ctx context.Context, categoryID, name string) (int64, error) {
	var changed int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		changed = 0
		snaps, err := tx.Documents(r.collection.Where("categoryId", "==", categoryID)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Update(snap.Ref, []firestore.Update{{Path: "categoryName", Value: name}}); err != nil {
				return err
			}
			changed++
		}
		return nil
	}, firestore.MaxAttempts(1))
	if err != nil {
		return 0, classify(err)
	}
	return changed, nil
}

// DeleteByCategory removes every referencing record in one transaction.
func (r *firestoreEquipmentRepository) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	var deleted int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = 0
		snaps, err := tx.Documents(r.collection.Where("categoryId", "==", categoryID)).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if err := tx.Delete(snap.Ref); err != nil {
				return err
			}
			deleted++
		}
		return nil
	}, firestore.MaxAttempts(1))
	if err != nil {
		return 0, classify(err)
	}
	return deleted, nil
}

func decodeEquipment(snap *firestore.DocumentSnapshot) (*domain.Equipment, error) {
	var e domain.Equipment
	if err := snap.DataTo(&e); err != nil {
		return nil, err
	}
	e.ID = snap.Ref.ID
	return &e, nil
}
