package main

import (
	"errors"
	"fmt"

	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/repository"
)

// describeStartupError turns a startup failure into the message printed to
// the operator.
func describeStartupError(err error) string {
	switch {
	case errors.Is(err, config.ErrPlaceholderCredentials):
		return fmt.Sprintf("Configuration error: %v.\n"+
			"Edit config.yaml (see config.example.yaml) or set the matching environment variable.", err)
	case errors.Is(err, config.ErrInvalidConfig):
		return fmt.Sprintf("Configuration error: %v.", err)
	case errors.Is(err, repository.ErrPermissionDenied):
		return fmt.Sprintf("Permission error: the data store rejected the request (%v).\n"+
			"For MongoDB, check the user and password in store.mongo.uri and that the user may read and write the database.\n"+
			"For Firestore, check that the service account has the Cloud Datastore User role and that security rules allow server access.", err)
	case errors.Is(err, repository.ErrUnavailable):
		return fmt.Sprintf("Connectivity error: could not reach the data store (%v).\n"+
			"Check the network and that the database is running. MongoDB must run as a replica set.", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
