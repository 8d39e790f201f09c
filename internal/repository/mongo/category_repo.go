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

// mongoCategoryRepository implements repository.CategoryRepository
type mongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new Category repository backed by MongoDB.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(repository.CategoriesCollection),
	}
}

// Create inserts a new category and returns its store-issued ID.
func (r *mongoCategoryRepository) Create(ctx context.Context, category *domain.Category) (string, error) {
	if category.Name == "" {
		return "", errors.New("category name is required")
	}
	category.ID = newID()

	if _, err := r.collection.InsertOne(ctx, category); err != nil {
		return "", classify(err)
	}
	return category.ID, nil
}

// GetByID retrieves a category by its ID.
func (r *mongoCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, classify(err)
	}
	return &category, nil
}

// List returns every category ordered by name.
func (r *mongoCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	categories := []domain.Category{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, classify(err)
	}
	return categories, nil
}

// Update changes the name and image of an existing category.
func (r *mongoCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		return errors.New("category ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":     category.Name,
			"imageUrl": category.ImageURL,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": category.ID}, update)
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a category. Equipment referencing it is not touched here.
func (r *mongoCategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
