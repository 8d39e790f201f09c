package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type driverErr struct{ code int }

func (e driverErr) Error() string { return "driver failure" }

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(ErrUnavailable, nil))

	err := Classify(ErrUnavailable, driverErr{code: 7})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "store unavailable: driver failure", err.Error())

	var de driverErr
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 7, de.code)

	again := Classify(ErrUnavailable, err)
	assert.Same(t, err, again, "already classified errors are returned as is")
}
