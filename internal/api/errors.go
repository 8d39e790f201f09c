package api

import (
	"errors"
	"net/http"

	"musclemania/gym-catalog/internal/repository"
	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// respondWithServiceError maps service and store errors to a status code.
// Unknown errors become a 500 carrying fallback; the cause goes to c.Error
// so RequestLogger can print it.
func respondWithServiceError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrEquipmentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrSetTypeMismatch),
		errors.Is(err, service.ErrNoSets),
		errors.Is(err, service.ErrAuthValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, repository.ErrAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed),
		errors.Is(err, service.ErrInvalidToken):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, "The data store denied access")
	case errors.Is(err, repository.ErrUnavailable),
		errors.Is(err, service.ErrGenerationDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		abortWithError(c, http.StatusBadGateway, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
