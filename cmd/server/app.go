package main

import (
	"context"
	"fmt"
	"time"

	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/repository"
	firestorerepo "musclemania/gym-catalog/internal/repository/firestore"
	"musclemania/gym-catalog/internal/repository/memory"
	mongorepo "musclemania/gym-catalog/internal/repository/mongo"
	"musclemania/gym-catalog/internal/seed"

	"go.uber.org/zap"
)

// stores bundles the repositories of the configured driver.
type stores struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	equipment  repository.EquipmentRepository
	history    repository.WorkoutHistoryRepository
	seed       repository.SeedStore
	close      func()
}

// loadConfig reads and validates the configuration. A --log-level flag
// takes precedence over log.level.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if logLevel == "" && cfg.Log.Level != "" {
		l, err := newLogger(cfg.Log.Level)
		if err != nil {
			return cfg, fmt.Errorf("%w: log.level: %v", config.ErrInvalidConfig, err)
		}
		logger = l
	}
	return cfg, nil
}

func openStores(ctx context.Context, cfg config.StoreConfig) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongorepo.ConnectDB(cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		db := client.Database(cfg.Mongo.Name)
		logger.Info("Database connection established", zap.String("driver", cfg.Driver), zap.String("database", cfg.Mongo.Name))

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		mongorepo.EnsureIndexes(indexCtx, db, logger)
		cancel()

		return &stores{
			users:      mongorepo.NewMongoUserRepository(db),
			categories: mongorepo.NewMongoCategoryRepository(db),
			equipment:  mongorepo.NewMongoEquipmentRepository(db),
			history:    mongorepo.NewMongoWorkoutHistoryRepository(db),
			seed:       mongorepo.NewMongoSeedStore(db),
			close: func() {
				logger.Info("Disconnecting MongoDB...")
				if err := mongorepo.DisconnectDB(client); err != nil {
					logger.Error("Failed to disconnect MongoDB", zap.Error(err))
				}
			},
		}, nil

	case config.DriverFirestore:
		client, err := firestorerepo.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("connect to Firestore: %w", err)
		}
		logger.Info("Database connection established", zap.String("driver", cfg.Driver), zap.String("project", cfg.Firestore.ProjectID))

		return &stores{
			users:      firestorerepo.NewFirestoreUserRepository(client),
			categories: firestorerepo.NewFirestoreCategoryRepository(client),
			equipment:  firestorerepo.NewFirestoreEquipmentRepository(client),
			history:    firestorerepo.NewFirestoreWorkoutHistoryRepository(client),
			seed:       firestorerepo.NewFirestoreSeedStore(client),
			close: func() {
				if err := client.Close(); err != nil {
					logger.Error("Failed to close Firestore client", zap.Error(err))
				}
			},
		}, nil

	case config.DriverMemory:
		logger.Warn("Using the in-memory store; data is lost on exit")
		s := memory.NewStore()
		return &stores{
			users:      s.Users(),
			categories: s.Categories(),
			equipment:  s.Equipment(),
			history:    s.WorkoutHistory(),
			seed:       s,
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown store.driver %q", config.ErrInvalidConfig, cfg.Driver)
}

// runSeed seeds the catalog once and logs the result.
func runSeed(ctx context.Context, cfg config.SeedConfig, store repository.SeedStore, opts ...seed.Option) error {
	catalog, err := seed.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}

	res, err := seed.NewSeeder(store, catalog, logger, opts...).Run(ctx)
	if err != nil {
		return err
	}
	if res.Skipped {
		logger.Info("Catalog seeding skipped", zap.String("reason", res.Reason))
		return nil
	}
	logger.Info("Catalog seeded",
		zap.Int("categories", res.CategoriesCreated),
		zap.Int("equipment", res.EquipmentCreated),
		zap.Strings("skippedEquipment", res.SkippedEquipment))
	return nil
}
