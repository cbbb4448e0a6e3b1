package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libraria/libraria/internal/app/models/dto"
	"github.com/libraria/libraria/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// call this for every service error so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()),
		})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceConflict, err.Error()),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Store temporarily unavailable"),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// HandleValidationError returns a 400 response for request binding failures
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.APIResponse{
		Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error()),
	})
}
