package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selim/campusfind/internal/app/models/dto"
	"github.com/selim/campusfind/internal/pkg/apperrors"
)

// HandleAPIError maps the error taxonomy onto HTTP responses so the boundary
// layer always renders an accurate, cause-specific message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Validation: rejected before any write
	case apperrors.Is(err, apperrors.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCategory, err.Error())))
	case apperrors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRole, err.Error())))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrInvalidEmail, apperrors.ErrInvalidPassword, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	// Uniqueness: reported distinctly from other integrity failures
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email is already registered").WithField("email")))
	case apperrors.Is(err, apperrors.ErrIdentifierExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "This user ID already exists").WithField("userId")))

	// Referential: a referenced row does not exist
	case apperrors.Is(err, apperrors.ErrUserNotFound, apperrors.ErrLostPostNotFound, apperrors.ErrFoundPostNotFound, apperrors.ErrMatchNotFound, apperrors.ErrPostOwnerMissing, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	// State conflicts: precondition on status/role/ownership not met
	case apperrors.Is(err, apperrors.ErrLostPostNotOpen):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStateConflict, "Lost item is already matched or closed")))
	case apperrors.Is(err, apperrors.ErrFoundPostNotAvailable):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStateConflict, "Found item is already matched or returned")))
	case apperrors.Is(err, apperrors.ErrMatchResolved):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStateConflict, "Match is already resolved")))
	case apperrors.Is(err, apperrors.ErrAdminRequired, apperrors.ErrNotPostOwner, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))

	// Authentication
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	// Transient storage errors: safe to retry the whole operation
	case apperrors.Is(err, apperrors.ErrLockTimeout):
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeLockTimeout, "Storage busy, please retry")))

	case apperrors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStateConflict, err.Error())))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// IsNotFound reports whether the error maps to a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound) ||
		errors.Is(err, apperrors.ErrUserNotFound) ||
		errors.Is(err, apperrors.ErrLostPostNotFound) ||
		errors.Is(err, apperrors.ErrFoundPostNotFound) ||
		errors.Is(err, apperrors.ErrMatchNotFound)
}
