package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
)

// UpdateController handles community feed posts
type UpdateController struct {
	updateService *services.UpdateService
	logger        zerolog.Logger
}

// NewUpdateController creates a new UpdateController
func NewUpdateController(updateService *services.UpdateService, logger zerolog.Logger) *UpdateController {
	return &UpdateController{
		updateService: updateService,
		logger:        logger,
	}
}

// Create posts an update to a community the caller administers
func (c *UpdateController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Content is required"))
		return
	}

	update, err := c.updateService.Create(ctx.Request.Context(), userID, ctx.Param("handle"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewUpdateResponse(update))
}

// ListByCommunity returns the community's feed, newest first
func (c *UpdateController) ListByCommunity(ctx *gin.Context) {
	updates, err := c.updateService.ListByCommunity(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.UpdateResponse, 0, len(updates))
	for _, update := range updates {
		resp = append(resp, dto.NewUpdateResponse(update))
	}
	ctx.JSON(http.StatusOK, resp)
}
