package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"musclemania/gym-catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStorage(t *testing.T, publicBaseURL string) FileStorage {
	t.Helper()
	// Keep the developer's AWS profile out of the test.
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "credentials"))
	t.Setenv("AWS_PROFILE", "")

	s, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "access",
		SecretAccessKey: "secret",
		BucketName:      "gym-images",
		PublicBaseURL:   publicBaseURL,
	}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestS3Storage_PublicURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"no public base", "", ""},
		{"plain base", "https://cdn.example.com", "https://cdn.example.com/generated/a.jpg"},
		{"trailing slash trimmed", "https://cdn.example.com/", "https://cdn.example.com/generated/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStorage(t, tt.baseURL)
			assert.Equal(t, tt.want, s.PublicURL(GeneratedImagePrefix+"a.jpg"))
		})
	}
}

func TestS3Storage_PresignedURL(t *testing.T) {
	s := newTestStorage(t, "")

	url, err := s.GeneratePresignedDownloadURL(context.Background(), "generated/a.jpg", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/gym-images/generated/a.jpg?")
	assert.Contains(t, url, "X-Amz-Expires=3600")

	url, err = s.GeneratePresignedDownloadURL(context.Background(), "generated/a.jpg", 0)
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Expires=900", "zero expiry falls back to the default")
}
