package repository

import "errors"

// Error constants for repository layer
var (
	ErrNotFound         = RepositoryError("not found")
	ErrAlreadyExists    = RepositoryError("already exists")
	ErrUnavailable      = RepositoryError("store unavailable")
	ErrPermissionDenied = RepositoryError("permission denied by store")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// storeError keeps the driver error while matching one of the sentinels above.
type storeError struct {
	kind RepositoryError
	err  error
}

func (e *storeError) Error() string { return string(e.kind) + ": " + e.err.Error() }
func (e *storeError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Classify wraps err so that errors.Is(err, kind) holds while the original
// driver error stays reachable through errors.As.
func Classify(kind RepositoryError, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &storeError{kind: kind, err: err}
}
