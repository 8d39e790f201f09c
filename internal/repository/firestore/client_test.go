package firestore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"musclemania/gym-catalog/internal/repository"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "no doc"), repository.ErrNotFound},
		{"already exists", status.Error(codes.AlreadyExists, "dup"), repository.ErrAlreadyExists},
		{"permission denied", status.Error(codes.PermissionDenied, "rules"), repository.ErrPermissionDenied},
		{"unauthenticated", status.Error(codes.Unauthenticated, "token"), repository.ErrPermissionDenied},
		{"unavailable", status.Error(codes.Unavailable, "down"), repository.ErrUnavailable},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), repository.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}

	plain := errors.New("boom")
	assert.Equal(t, plain, classify(plain))
	assert.NoError(t, classify(nil))
}
