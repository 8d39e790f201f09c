package repository

import (
	"context"

	"musclemania/gym-catalog/internal/domain"
)

// Collection names shared by every store implementation.
const (
	CategoriesCollection     = "categories"
	EquipmentCollection      = "equipment"
	UsersCollection          = "users"
	WorkoutHistoryCollection = "workoutHistory"
	MetaCollection           = "meta"
)

// UserRepository stores accounts and their role.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// CategoryRepository defines the interface for interacting with category data.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error) // ordered by name
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// EquipmentRepository defines the interface for interacting with equipment data.
// List results are unordered; callers sort.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Equipment, error)
	Update(ctx context.Context, equipment *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	// RenameCategory rewrites the denormalized categoryName of every equipment
	// record that references categoryID. It returns the number of records changed.
	RenameCategory(ctx context.Context, categoryID, name string) (int64, error)
	// DeleteByCategory removes every equipment record referencing categoryID.
	DeleteByCategory(ctx context.Context, categoryID string) (int64, error)
}

// WorkoutHistoryRepository stores each user's saved sessions.
type WorkoutHistoryRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.WorkoutSession, error) // newest first
}

// Write is one record in an atomic batch.
type Write struct {
	Collection string
	ID         string
	Record     any
}

// SeedStore is the minimal store contract the seeding routine needs.
type SeedStore interface {
	// QueryFirst returns the IDs of at most limit records of collection.
	QueryFirst(ctx context.Context, collection string, limit int) ([]string, error)
	// AllocateID issues a new document ID for collection without writing anything.
	AllocateID(collection string) string
	// BatchWrite creates all records atomically. If any ID already exists
	// the whole batch fails with ErrAlreadyExists and nothing is written.
	BatchWrite(ctx context.Context, writes []Write) error
}
