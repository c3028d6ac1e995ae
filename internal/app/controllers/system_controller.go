package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namansharma28/gravitas-backend/internal/cache"
)

// SystemController exposes the health probe and cache statistics
type SystemController struct {
	views *cache.Cache
}

// NewSystemController creates a new SystemController
func NewSystemController(views *cache.Cache) *SystemController {
	return &SystemController{views: views}
}

// Health is the liveness probe
func (c *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CacheStats reports view cache hit/miss counters and key count
func (c *SystemController) CacheStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.views.Stats(ctx.Request.Context()))
}
