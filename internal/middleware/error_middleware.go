package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP statuses. Every failure
// body is the same shape: a JSON object with a single error message.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		respond(c, http.StatusForbidden, "Email not verified")
	case errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrNotCommunityAdmin):
		respond(c, http.StatusForbidden, "Only community admins can do that")

	case errors.Is(err, apperrors.ErrInvalidHandle):
		respond(c, http.StatusBadRequest, "Invalid community handle")
	case errors.Is(err, apperrors.ErrInvalidRSVPKind):
		respond(c, http.StatusBadRequest, "RSVP kind must be attending or interested")
	case errors.Is(err, apperrors.ErrInvalidOTP):
		respond(c, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, apperrors.ErrInvalidVerificationToken):
		respond(c, http.StatusBadRequest, "Invalid or expired verification token")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, "Invalid request")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, apperrors.ErrHandleAlreadyExists):
		respond(c, http.StatusConflict, "Community handle already taken")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respond(c, http.StatusConflict, "Already a member of this community")
	case errors.Is(err, apperrors.ErrAlreadyFollowing):
		respond(c, http.StatusConflict, "Already following this community")
	case errors.Is(err, apperrors.ErrCommunityNotPending):
		respond(c, http.StatusConflict, "Community is not pending approval")
	case errors.Is(err, apperrors.ErrEmailAlreadyVerified):
		respond(c, http.StatusConflict, "Email already verified")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, "Conflict")

	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCommunityNotFound):
		respond(c, http.StatusNotFound, "Community not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		respond(c, http.StatusNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		respond(c, http.StatusNotFound, "Notification not found")
	case errors.Is(err, apperrors.ErrMembershipNotFound):
		respond(c, http.StatusNotFound, "Not a member of this community")
	case errors.Is(err, apperrors.ErrFollowNotFound):
		respond(c, http.StatusNotFound, "Not following this community")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, "Resource not found")

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, "Internal server error")
	}
}

func respond(c *gin.Context, status int, message string) {
	c.JSON(status, dto.NewErrorResponse(message))
}
