package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// FeedLimit is the fixed page size for feed-style listings
	// (notifications, followed communities, update feeds). There is no
	// cursor; repeated calls beyond the limit are not supported.
	FeedLimit = 20

	MaxListLimit = 100
)

// ParseLimit extracts an optional `limit` query parameter, clamped to
// [1, MaxListLimit], defaulting to FeedLimit.
func ParseLimit(c *gin.Context) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(FeedLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxListLimit {
		return FeedLimit
	}
	return limit
}
