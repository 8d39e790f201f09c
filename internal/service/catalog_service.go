package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrCategoryInUse     = errors.New("category is still referenced by equipment")
	ErrUnknownCategory   = errors.New("referenced category does not exist")
	ErrValidationFailed  = errors.New("validation failed")
)

// CategoryInput is the editable part of a category.
type CategoryInput struct {
	Name     string
	ImageURL string
}

// EquipmentInput is the editable part of an equipment record.
type EquipmentInput struct {
	Name       string
	ImageURL   string
	Info       string
	VideoURL   string
	Type       domain.EquipmentType
	CategoryID string
}

// CategoryDetail is everything the category page shows.
type CategoryDetail struct {
	Category      *domain.Category
	Equipment     []domain.Equipment
	AllCategories []domain.Category
}

// CatalogPolicy controls how category edits affect equipment.
type CatalogPolicy struct {
	PropagateRename bool
	DeletePolicy    string // config.DeletePolicy*
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetCategoryDetail(ctx context.Context, id string) (*CategoryDetail, error)
	CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// ListEquipment returns all equipment, or one category's when categoryID is set,
	// sorted by name.
	ListEquipment(ctx context.Context, categoryID string) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	CreateEquipment(ctx context.Context, in EquipmentInput) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, in EquipmentInput) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
}

type catalogService struct {
	categoryRepo  repository.CategoryRepository
	equipmentRepo repository.EquipmentRepository
	policy        CatalogPolicy
	logger        *zap.Logger
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(categoryRepo repository.CategoryRepository, equipmentRepo repository.EquipmentRepository, policy CatalogPolicy, logger *zap.Logger) CatalogService {
	if policy.DeletePolicy == "" {
		policy.DeletePolicy = config.DeletePolicyOrphan
	}
	return &catalogService{
		categoryRepo:  categoryRepo,
		equipmentRepo: equipmentRepo,
		policy:        policy,
		logger:        logger,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) GetCategoryDetail(ctx context.Context, id string) (*CategoryDetail, error) {
	detail := &CategoryDetail{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.Category, err = s.GetCategory(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.Equipment, err = s.ListEquipment(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.AllCategories, err = s.categoryRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}
	category := &domain.Category{Name: in.Name, ImageURL: in.ImageURL}
	if category.ImageURL == "" {
		category.ImageURL = domain.DefaultCategoryImageURL
	}

	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return category, nil
}

// UpdateCategory saves the category and, when the name changed and the
// policy allows it, rewrites the copied name on its equipment.
func (s *catalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}

	existing, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	renamed := existing.Name != in.Name

	existing.Name = in.Name
	if in.ImageURL != "" {
		existing.ImageURL = in.ImageURL
	}
	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if renamed && s.policy.PropagateRename {
		n, err := s.equipmentRepo.RenameCategory(ctx, id, existing.Name)
		if err != nil {
			return nil, fmt.Errorf("propagate category rename: %w", err)
		}
		s.logger.Info("Propagated category rename",
			zap.String("categoryId", id),
			zap.String("name", existing.Name),
			zap.Int64("equipment", n))
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	switch s.policy.DeletePolicy {
	case config.DeletePolicyReject:
		equipment, err := s.equipmentRepo.ListByCategory(ctx, id)
		if err != nil {
			return err
		}
		if len(equipment) > 0 {
			return ErrCategoryInUse
		}
	case config.DeletePolicyCascade:
		n, err := s.equipmentRepo.DeleteByCategory(ctx, id)
		if err != nil {
			return fmt.Errorf("delete category equipment: %w", err)
		}
		s.logger.Info("Deleted equipment of category", zap.String("categoryId", id), zap.Int64("equipment", n))
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) ListEquipment(ctx context.Context, categoryID string) ([]domain.Equipment, error) {
	var (
		equipment []domain.Equipment
		err       error
	)
	if categoryID != "" {
		equipment, err = s.equipmentRepo.ListByCategory(ctx, categoryID)
	} else {
		equipment, err = s.equipmentRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(equipment, func(i, j int) bool {
		return strings.ToLower(equipment[i].Name) < strings.ToLower(equipment[j].Name)
	})
	return equipment, nil
}

func (s *catalogService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return equipment, nil
}

// applyInput validates in and copies it onto e, including the name of the
// referenced category.
func (s *catalogService) applyInput(ctx context.Context, e *domain.Equipment, in EquipmentInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: equipment name is required", ErrValidationFailed)
	}
	if in.Type == "" {
		in.Type = domain.EquipmentStrength
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrValidationFailed, domain.EquipmentStrength, domain.EquipmentCardio)
	}
	if in.CategoryID == "" {
		return fmt.Errorf("%w: categoryId is required", ErrValidationFailed)
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnknownCategory
		}
		return err
	}

	e.Name = in.Name
	e.ImageURL = in.ImageURL
	if e.ImageURL == "" {
		e.ImageURL = domain.DefaultEquipmentImageURL
	}
	e.Info = in.Info
	e.VideoURL = in.VideoURL
	e.Type = in.Type
	e.CategoryID = category.ID
	e.CategoryName = category.Name
	return nil
}

func (s *catalogService) CreateEquipment(ctx context.Context, in EquipmentInput) (*domain.Equipment, error) {
	equipment := &domain.Equipment{}
	if err := s.applyInput(ctx, equipment, in); err != nil {
		return nil, err
	}
	id, err := s.equipmentRepo.Create(ctx, equipment)
	if err != nil {
		return nil, err
	}
	equipment.ID = id
	return equipment, nil
}

func (s *catalogService) UpdateEquipment(ctx context.Context, id string, in EquipmentInput) (*domain.Equipment, error) {
	equipment, err := s.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(ctx, equipment, in); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return equipment, nil
}

func (s *catalogService) DeleteEquipment(ctx context.Context, id string) error {
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEquipmentNotFound
		}
		return err
	}
	return nil
}
