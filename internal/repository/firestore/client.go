package firestore

import (
	"context"
	"errors"

	"musclemania/gym-catalog/internal/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Connect creates a Firestore client for projectID. When credentialsFile is
// empty, Application Default Credentials are used (FIRESTORE_EMULATOR_HOST is
// honoured by the client library).
func Connect(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, classify(err)
	}
	return client, nil
}

// classify maps gRPC status codes onto the repository error taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return repository.Classify(repository.ErrUnavailable, err)
	}
	switch status.Code(err) {
	case codes.NotFound:
		return repository.ErrNotFound
	case codes.AlreadyExists:
		return repository.Classify(repository.ErrAlreadyExists, err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return repository.Classify(repository.ErrPermissionDenied, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return repository.Classify(repository.ErrUnavailable, err)
	}
	return err
}
