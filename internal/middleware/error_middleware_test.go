package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

func runErrorHandler(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, err)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return w.Code, body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email not verified", apperrors.ErrEmailNotVerified, http.StatusForbidden},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"not community admin", apperrors.ErrNotCommunityAdmin, http.StatusForbidden},
		{"invalid handle", apperrors.ErrInvalidHandle, http.StatusBadRequest},
		{"invalid otp", apperrors.ErrInvalidOTP, http.StatusBadRequest},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"handle taken", apperrors.ErrHandleAlreadyExists, http.StatusConflict},
		{"already member", apperrors.ErrAlreadyMember, http.StatusConflict},
		{"not pending", apperrors.ErrCommunityNotPending, http.StatusConflict},
		{"community not found", apperrors.ErrCommunityNotFound, http.StatusNotFound},
		{"event not found", apperrors.ErrEventNotFound, http.StatusNotFound},
		{"notification not found", apperrors.ErrNotificationNotFound, http.StatusNotFound},
		{"follow not found", apperrors.ErrFollowNotFound, http.StatusNotFound},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := runErrorHandler(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			msg, ok := body["error"].(string)
			if !ok || msg == "" {
				t.Errorf("body = %v, want single non-empty error field", body)
			}
			if len(body) != 1 {
				t.Errorf("body has %d fields, want exactly one", len(body))
			}
		})
	}
}

// Internal error detail must never leak into the response body.
func TestHandleAPIErrorHidesInternalDetail(t *testing.T) {
	t.Parallel()

	_, body := runErrorHandler(t, errors.New("pq: connection refused on 10.0.0.5"))
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
}
