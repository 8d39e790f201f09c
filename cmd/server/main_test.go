package main

import (
	"errors"
	"fmt"
	"testing"

	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDescribeStartupError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
		hint   string
	}{
		{
			name:   "placeholder credentials",
			err:    fmt.Errorf("%w: replace the sample value of jwt.secret", config.ErrPlaceholderCredentials),
			prefix: "Configuration error",
			hint:   "config.example.yaml",
		},
		{
			name:   "placeholder message names the cause once",
			err:    fmt.Errorf("%w: replace the sample value of jwt.secret", config.ErrPlaceholderCredentials),
			prefix: "Configuration error: placeholder credentials: replace",
		},
		{
			name:   "invalid config",
			err:    fmt.Errorf("%w: jwt.secret must be set", config.ErrInvalidConfig),
			prefix: "Configuration error",
			hint:   "jwt.secret",
		},
		{
			name:   "permission denied",
			err:    fmt.Errorf("seed catalog: %w", repository.Classify(repository.ErrPermissionDenied, errors.New("rules"))),
			prefix: "Permission error",
			hint:   "Cloud Datastore User",
		},
		{
			name:   "unavailable",
			err:    fmt.Errorf("connect to MongoDB: %w", repository.Classify(repository.ErrUnavailable, errors.New("server selection timeout"))),
			prefix: "Connectivity error",
			hint:   "replica set",
		},
		{
			name:   "other",
			err:    errors.New("boom"),
			prefix: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := describeStartupError(tt.err)
			assert.Regexp(t, "^"+tt.prefix, msg)
			if tt.hint != "" {
				assert.Contains(t, msg, tt.hint)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = newLogger("")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger("loud")
	assert.Error(t, err)
}
