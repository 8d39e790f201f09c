package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"musclemania/gym-catalog/internal/generative"
	"musclemania/gym-catalog/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrGenerationDisabled = errors.New("content generation is not configured")
	ErrGenerationFailed   = errors.New("failed to generate content, please try again")
)

// GeneratedImageURLExpiry is the lifetime of presigned links to generated images.
const GeneratedImageURLExpiry = 7 * 24 * time.Hour

type GenerationService interface {
	GenerateEquipmentInfo(ctx context.Context, equipmentName string) (string, error)
	BuildImagePrompt(equipmentName, characterDescription string) string
	// GenerateEquipmentImage returns a URL of the generated picture.
	GenerateEquipmentImage(ctx context.Context, prompt string) (string, error)
}

type generationService struct {
	model  generative.Model    // nil when no API key is configured
	images storage.FileStorage // nil: images are returned inline as data URLs
	logger *zap.Logger
}

func NewGenerationService(model generative.Model, images storage.FileStorage, logger *zap.Logger) GenerationService {
	return &generationService{model: model, images: images, logger: logger}
}

func (s *generationService) GenerateEquipmentInfo(ctx context.Context, equipmentName string) (string, error) {
	if s.model == nil {
		return "", ErrGenerationDisabled
	}
	equipmentName = strings.TrimSpace(equipmentName)
	if equipmentName == "" {
		return "", fmt.Errorf("%w: equipment name is required", ErrValidationFailed)
	}

	text, err := s.model.GenerateText(ctx, generative.EquipmentInfoPrompt(equipmentName))
	if err != nil {
		s.logger.Error("Error generating equipment info", zap.String("equipment", equipmentName), zap.Error(err))
		return "", ErrGenerationFailed
	}
	return text, nil
}

func (s *generationService) BuildImagePrompt(equipmentName, characterDescription string) string {
	return generative.BuildImagePrompt(strings.TrimSpace(equipmentName), strings.TrimSpace(characterDescription))
}

func (s *generationService) GenerateEquipmentImage(ctx context.Context, prompt string) (string, error) {
	if s.model == nil {
		return "", ErrGenerationDisabled
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", ErrValidationFailed)
	}

	image, err := s.model.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Error("Error generating equipment image", zap.Error(err))
		return "", ErrGenerationFailed
	}

	if s.images == nil {
		return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image), nil
	}
	return s.store(ctx, image)
}

// store uploads image and returns its public or presigned URL.
func (s *generationService) store(ctx context.Context, image []byte) (string, error) {
	key := storage.GeneratedImagePrefix + uuid.NewString() + ".jpg"
	if err := s.images.PutObject(ctx, key, "image/jpeg", image); err != nil {
		return "", fmt.Errorf("store generated image: %w", err)
	}

	if url := s.images.PublicURL(key); url != "" {
		return url, nil
	}
	url, err := s.images.GeneratePresignedDownloadURL(ctx, key, GeneratedImageURLExpiry)
	if err != nil {
		// nobody can reach the object without a link
		if delErr := s.images.DeleteObject(ctx, key); delErr != nil {
			s.logger.Warn("Failed to remove unreachable generated image", zap.String("key", key), zap.Error(delErr))
		}
		return "", fmt.Errorf("presign generated image: %w", err)
	}
	return url, nil
}
