package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"musclemania/gym-catalog/internal/generative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeModel struct {
	text     string
	image    []byte
	err      error
	prompted []string
}

func (m *fakeModel) GenerateText(_ context.Context, prompt string) (string, error) {
	m.prompted = append(m.prompted, prompt)
	return m.text, m.err
}

func (m *fakeModel) GenerateImage(_ context.Context, prompt string) ([]byte, error) {
	m.prompted = append(m.prompted, prompt)
	return m.image, m.err
}

type fakeStorage struct {
	objects    map[string][]byte
	publicBase string
	presignErr error
	deleted    []string
}

func (s *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://bucket.example/" + key + "?X-Amz-Signature=abc", nil
}

func (s *fakeStorage) PublicURL(key string) string {
	if s.publicBase == "" {
		return ""
	}
	return s.publicBase + "/" + key
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

func TestGenerationService_Disabled(t *testing.T) {
	svc := NewGenerationService(nil, nil, zap.NewNop())
	_, err := svc.GenerateEquipmentInfo(context.Background(), "Treadmill")
	assert.ErrorIs(t, err, ErrGenerationDisabled)
	_, err = svc.GenerateEquipmentImage(context.Background(), "a treadmill")
	assert.ErrorIs(t, err, ErrGenerationDisabled)

	// prompt building needs no model
	assert.Contains(t, svc.BuildImagePrompt("Treadmill", ""), generative.ThemeColor)
}

func TestGenerationService_Info(t *testing.T) {
	model := &fakeModel{text: "**Primary Muscles Targeted:** quads"}
	svc := NewGenerationService(model, nil, zap.NewNop())

	text, err := svc.GenerateEquipmentInfo(context.Background(), " Leg Press Machine ")
	require.NoError(t, err)
	assert.Equal(t, model.text, text)
	require.Len(t, model.prompted, 1)
	assert.Equal(t, generative.EquipmentInfoPrompt("Leg Press Machine"), model.prompted[0])

	_, err = svc.GenerateEquipmentInfo(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	model.err = errors.New("quota")
	_, err = svc.GenerateEquipmentInfo(context.Background(), "Treadmill")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerationService_ImageInlineWithoutBucket(t *testing.T) {
	model := &fakeModel{image: []byte{0xff, 0xd8, 0xff}}
	svc := NewGenerationService(model, nil, zap.NewNop())

	url, err := svc.GenerateEquipmentImage(context.Background(), "a bench")
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(model.image), url)

	model.err = generative.ErrNoImage
	_, err = svc.GenerateEquipmentImage(context.Background(), "a bench")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerationService_ImageUploaded(t *testing.T) {
	model := &fakeModel{image: []byte("jpeg")}

	t.Run("public bucket", func(t *testing.T) {
		images := &fakeStorage{publicBase: "https://cdn.example"}
		url, err := NewGenerationService(model, images, zap.NewNop()).GenerateEquipmentImage(context.Background(), "a bench")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "https://cdn.example/generated/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))
		assert.Len(t, images.objects, 1)
	})

	t.Run("presigned", func(t *testing.T) {
		images := &fakeStorage{}
		url, err := NewGenerationService(model, images, zap.NewNop()).GenerateEquipmentImage(context.Background(), "a bench")
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Signature")
	})

	t.Run("presign failure removes the object", func(t *testing.T) {
		images := &fakeStorage{presignErr: errors.New("no credentials")}
		_, err := NewGenerationService(model, images, zap.NewNop()).GenerateEquipmentImage(context.Background(), "a bench")
		require.Error(t, err)
		assert.Len(t, images.deleted, 1)
		assert.Empty(t, images.objects)
	})
}
