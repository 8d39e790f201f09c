// Package seed populates an empty store with the baseline catalog.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"go.uber.org/zap"
)

// MarkerVersion is written into the seed marker; bump it when the catalog
// layout changes in a way operators need to see.
const MarkerVersion = 1

// Outcomes reported to the recorder.
const (
	OutcomeSeeded  = "seeded"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Result describes what a Run did.
type Result struct {
	Skipped           bool
	Reason            string
	CategoriesCreated int
	EquipmentCreated  int
	// SkippedEquipment lists equipment whose categoryName matched no category.
	SkippedEquipment []string
}

// Seeder writes the baseline catalog once.
type Seeder struct {
	store   repository.SeedStore
	catalog Catalog
	logger  *zap.Logger
	record  func(outcome string)
	now     func() time.Time
}

// Option configures a Seeder.
type Option func(*Seeder)

// WithRecorder registers a callback receiving the outcome of every Run.
func WithRecorder(record func(outcome string)) Option {
	return func(s *Seeder) { s.record = record }
}

// NewSeeder creates a Seeder for catalog.
func NewSeeder(store repository.SeedStore, catalog Catalog, logger *zap.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		store:   store,
		catalog: catalog,
		logger:  logger,
		record:  func(string) {},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds the store if the categories collection is empty.
//
// Categories (and the seed marker) are committed in one batch before any
// equipment is written; equipment is committed in a second batch. A failed
// equipment batch leaves the categories in place and a later Run will not
// repair it, because the guard only looks at categories.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	res, err := s.run(ctx)
	switch {
	case err != nil:
		s.record(OutcomeFailed)
	case res.Skipped:
		s.record(OutcomeSkipped)
	default:
		s.record(OutcomeSeeded)
	}
	return res, err
}

func (s *Seeder) run(ctx context.Context) (Result, error) {
	existing, err := s.store.QueryFirst(ctx, repository.CategoriesCollection, 1)
	if err != nil {
		return Result{}, fmt.Errorf("check categories: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("Database already contains categories, seeding skipped")
		return Result{Skipped: true, Reason: "categories already present"}, nil
	}

	s.logger.Info("Seeding database",
		zap.Int("categories", len(s.catalog.Categories)),
		zap.Int("equipment", len(s.catalog.Equipment)))

	// 1. Categories, IDs allocated before the write.
	categoryIDs := make(map[string]string, len(s.catalog.Categories))
	writes := make([]repository.Write, 0, len(s.catalog.Categories)+1)
	for _, def := range s.catalog.Categories {
		id := s.store.AllocateID(repository.CategoriesCollection)
		categoryIDs[def.Name] = id
		writes = append(writes, repository.Write{
			Collection: repository.CategoriesCollection,
			ID:         id,
			Record:     &domain.Category{ID: id, Name: def.Name, ImageURL: def.ImageURL},
		})
	}
	writes = append(writes, repository.Write{
		Collection: repository.MetaCollection,
		ID:         domain.CatalogSeedMarkerID,
		Record: &domain.SeedMarker{
			ID:       domain.CatalogSeedMarkerID,
			Version:  MarkerVersion,
			SeededAt: s.now().UTC(),
		},
	})

	if err := s.store.BatchWrite(ctx, writes); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			s.logger.Info("Seed marker already present, another instance seeded the catalog")
			return Result{Skipped: true, Reason: "seed marker already present"}, nil
		}
		return Result{}, fmt.Errorf("seed categories: %w", err)
	}
	s.logger.Info("Categories seeded successfully", zap.Int("count", len(s.catalog.Categories)))

	// 2. Equipment, linked by category name.
	res := Result{CategoriesCreated: len(s.catalog.Categories)}
	writes = make([]repository.Write, 0, len(s.catalog.Equipment))
	for _, def := range s.catalog.Equipment {
		categoryID, ok := categoryIDs[def.CategoryName]
		if !ok {
			s.logger.Warn("Could not find category ID for equipment, skipping",
				zap.String("equipment", def.Name),
				zap.String("categoryName", def.CategoryName))
			res.SkippedEquipment = append(res.SkippedEquipment, def.Name)
			continue
		}
		id := s.store.AllocateID(repository.EquipmentCollection)
		writes = append(writes, repository.Write{
			Collection: repository.EquipmentCollection,
			ID:         id,
			Record: &domain.Equipment{
				ID:           id,
				Name:         def.Name,
				ImageURL:     def.ImageURL,
				Type:         def.Type,
				CategoryID:   categoryID,
				CategoryName: def.CategoryName,
			},
		})
	}

	if err := s.store.BatchWrite(ctx, writes); err != nil {
		return res, fmt.Errorf("seed equipment: %w", err)
	}
	res.EquipmentCreated = len(writes)
	s.logger.Info("Equipment seeded successfully",
		zap.Int("count", res.EquipmentCreated),
		zap.Int("skipped", len(res.SkippedEquipment)))
	return res, nil
}
