package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Store: StoreConfig{
			Driver: DriverMongo,
			Mongo:  MongoConfig{URI: "mongodb://localhost:27017", Name: "gym"},
		},
		JWT:     JWTConfig{Secret: "s3cret", Expiration: time.Hour},
		Catalog: CatalogConfig{CategoryDeletePolicy: DeletePolicyOrphan},
		Server:  ServerConfig{Address: ":8080", Mode: "release"},
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"AIzaSyD-real-looking-key", false},
		{"[YOUR_API_KEY]", true},
		{"YOUR_PROJECT_ID", true},
		{"<project-id>", true},
		{"changeme", true},
		{"  ChangeMe ", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPlaceholder(tt.in), "IsPlaceholder(%q)", tt.in)
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("placeholder jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "changeme"
		err := cfg.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPlaceholderCredentials)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("placeholder firestore project", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Driver = DriverFirestore
		cfg.Store.Firestore.ProjectID = "[YOUR_PROJECT_ID]"
		assert.ErrorIs(t, cfg.Validate(), ErrPlaceholderCredentials)
	})

	t.Run("placeholder genai key", func(t *testing.T) {
		cfg := validConfig()
		cfg.GenAI.APIKey = "[YOUR_API_KEY]"
		assert.ErrorIs(t, cfg.Validate(), ErrPlaceholderCredentials)
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = ""
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.NotErrorIs(t, err, ErrPlaceholderCredentials)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Driver = "sqlite"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("memory driver needs no credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store = StoreConfig{Driver: DriverMemory}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Mode = "production"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("unknown delete policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.Catalog.CategoryDeletePolicy = "archive"
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  address: ":9090"
store:
  driver: firestore
  firestore:
    project_id: muscle-mania-test
jwt:
  secret: from-file
  expiration: 90m
catalog:
  category_delete_policy: reject
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, DriverFirestore, cfg.Store.Driver)
	assert.Equal(t, "muscle-mania-test", cfg.Store.Firestore.ProjectID)
	assert.Equal(t, "from-env", cfg.JWT.Secret, "env vars override the file")
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, DeletePolicyReject, cfg.Catalog.CategoryDeletePolicy)
	assert.True(t, cfg.Catalog.PropagateCategoryRename, "default applies")
	assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.TextModel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_NoFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.S3.Enabled())
}
