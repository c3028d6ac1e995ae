package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUnauthorized       = errors.New("unauthorized")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Community errors
var (
	ErrCommunityNotFound   = errors.New("community not found")
	ErrHandleAlreadyExists = errors.New("community handle already taken")
	ErrInvalidHandle       = errors.New("invalid community handle")
	ErrCommunityNotPending = errors.New("community is not pending approval")
	ErrNotCommunityAdmin   = errors.New("caller is not a community admin")
	ErrAlreadyMember       = errors.New("user is already a member")
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrAlreadyFollowing    = errors.New("community already followed")
	ErrFollowNotFound      = errors.New("follow not found")
)

// Event errors
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidRSVPKind = errors.New("invalid rsvp kind")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Verification errors
var (
	ErrInvalidOTP               = errors.New("invalid or expired OTP")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrEmailAlreadyVerified     = errors.New("email already verified")
)
