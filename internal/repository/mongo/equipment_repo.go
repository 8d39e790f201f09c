package mongo

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoEquipmentRepository implements repository.EquipmentRepository
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new Equipment repository backed by MongoDB.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(repository.EquipmentCollection),
	}
}

// Create inserts a new equipment record.
func (r *mongoEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (string, error) {
	if equipment.Name == "" || equipment.CategoryID == "" {
		return "", errors.New("equipment name and category ID are required")
	}
	equipment.ID = newID()

	if _, err := r.collection.InsertOne(ctx, equipment); err != nil {
		return "", classify(err)
	}
	return equipment.ID, nil
}

// GetByID retrieves an equipment record by its ID.
func (r *mongoEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	var equipment domain.Equipment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment); err != nil {
		return nil, classify(err)
	}
	return &equipment, nil
}

// List returns all equipment.
func (r *mongoEquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	return r.find(ctx, bson.M{})
}

// ListByCategory returns the equipment referencing categoryID.
func (r *mongoEquipmentRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Equipment, error) {
	return r.find(ctx, bson.M{"categoryId": categoryID})
}

func (r *mongoEquipmentRepository) find(ctx context.Context, filter bson.M) ([]domain.Equipment, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	equipment := []domain.Equipment{}
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, classify(err)
	}
	return equipment, nil
}

// Update replaces every mutable field of an equipment record.
func (r *mongoEquipmentRepository) Update(ctx context.Context, equipment *domain.Equipment) error {
	if equipment.ID == "" {
		return errors.New("equipment ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":         equipment.Name,
			"imageUrl":     equipment.ImageURL,
			"info":         equipment.Info,
			"videoUrl":     equipment.VideoURL,
			"type":         equipment.Type,
			"categoryId":   equipment.CategoryID,
			"categoryName": equipment.CategoryName,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": equipment.ID}, update)
	if err != nil {
		return classify(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an equipment record.
func (r *mongoEquipmentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RenameCategory updates the cached category name on all referencing equipment.
func (r *mongoEquipmentRepository) RenameCategory(ctx context.Context, categoryID, name string) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"categoryId": categoryID},
		bson.M{"$set": bson.M{"categoryName": name}},
	)
	if err != nil {
		return 0, classify(err)
	}
	return result.ModifiedCount, nil
}

// DeleteByCategory removes all equipment referencing categoryID.
func (r *mongoEquipmentRepository) DeleteByCategory(ctx context.Context, categoryID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return 0, classify(err)
	}
	return result.DeletedCount, nil
}
