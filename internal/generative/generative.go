// Package generative wraps the Gemini text and Imagen image models.
package generative

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoImage is returned when the image model answers without an image.
var ErrNoImage = errors.New("no image was generated")

// Model generates text and images from prompts.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// GenAIModel talks to the Gemini API.
type GenAIModel struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGenAIModel creates a client for the Gemini API backend.
func NewGenAIModel(ctx context.Context, apiKey, textModel, imageModel string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "imagen-4.0-generate-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIModel{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

func (m *GenAIModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.textModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// GenerateImage returns one 4:3 JPEG.
func (m *GenAIModel) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := m.client.Models.GenerateImages(ctx, m.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "4:3",
	})
	if err != nil {
		return nil, fmt.Errorf("generate images: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil ||
		len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, ErrNoImage
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
