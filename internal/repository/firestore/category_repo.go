package firestore

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
)

type firestoreCategoryRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestoreCategoryRepository creates a Category repository backed by Firestore.
func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		collection: client.Collection(repository.CategoriesCollection),
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *domain.Category) (string, error) {
	if category.Name == "" {
		return "", errors.New("category name is required")
	}
	ref := r.collection.NewDoc()
	if _, err := ref.Create(ctx, category); err != nil {
		return "", classify(err)
	}
	category.ID = ref.ID
	return ref.ID, nil
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	var category domain.Category
	if err := snap.DataTo(&category); err != nil {
		return nil, err
	}
	category.ID = snap.Ref.ID
	return &category, nil
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	snaps, err := r.collection.OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, classify(err)
	}

	categories := make([]domain.Category, 0, len(snaps))
	for _, snap := range snaps {
		var category domain.Category
		if err := snap.DataTo(&category); err != nil {
			return nil, err
		}
		category.ID = snap.Ref.ID
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *firestoreCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		return errors.New("category ID is required for update")
	}
	_, err := r.collection.Doc(category.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: category.Name},
		{Path: "imageUrl", Value: category.ImageURL},
	})
	return classify(err)
}

func (r *firestoreCategoryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.Doc(id).Delete(ctx, firestore.Exists)
	return classify(err)
}
