package errors

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ejoh/storefront-backend/internal/app/service"
)

// ErrorInfo is a parsed service error.
type ErrorInfo struct {
	Status  int    // HTTP status code
	Code    string // error code (see codes.go)
	Message string // human readable message
}

// ParseError maps a service error onto an HTTP status, an error code and a
// message safe to show the client. Unknown errors collapse to a generic 500
// so internals never leak into responses.
func ParseError(err error) ErrorInfo {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return ErrorInfo{
			Status:  http.StatusUnauthorized,
			Code:    AuthInvalidCredentials,
			Message: "Invalid email or password",
		}
	case errors.Is(err, service.ErrNoActiveSession):
		return ErrorInfo{
			Status:  http.StatusUnauthorized,
			Code:    AuthNoActiveSession,
			Message: "No active session",
		}
	case errors.Is(err, service.ErrProductNotFound):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "Product not found",
		}
	case errors.Is(err, service.ErrCatalogNotLoaded):
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    CatalogNotLoaded,
			Message: "Catalog is not loaded yet. Please try again shortly",
		}
	case errors.Is(err, service.ErrInvalidSortKey):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    CatalogInvalidSortKey,
			Message: "Unknown sort key",
		}
	case errors.Is(err, service.ErrInvalidQuantity):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    CartInvalidQuantity,
			Message: "Quantity must be at least 1",
		}
	case errors.Is(err, service.ErrPersistFailed):
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalStoreError,
			Message: "Failed to save your changes. Please try again later",
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorInfo{
			Status:  http.StatusRequestTimeout,
			Code:    InternalServerError,
			Message: "The request was cancelled",
		}
	default:
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "An unexpected error occurred. Please try again later",
		}
	}
}

// RespondWithServiceError parses err and writes the matching response.
// Field-level validation failures keep their per-field detail.
func RespondWithServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		RespondWithValidationError(c, validationErr.Fields)
		return
	}

	info := ParseError(err)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
