package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default", "", FeedLimit},
		{"explicit", "limit=50", 50},
		{"max", "limit=100", 100},
		{"over max", "limit=101", FeedLimit},
		{"zero", "limit=0", FeedLimit},
		{"negative", "limit=-5", FeedLimit},
		{"garbage", "limit=abc", FeedLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLimit(contextWithQuery(tt.query)); got != tt.want {
				t.Errorf("ParseLimit(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
