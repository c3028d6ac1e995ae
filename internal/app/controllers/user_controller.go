package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
)

// UserController handles the caller-scoped notification feed
type UserController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(notificationService *services.NotificationService, logger zerolog.Logger) *UserController {
	return &UserController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications returns the caller's newest notifications with the
// unread count
func (c *UserController) ListNotifications(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.notificationService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// MarkNotificationRead marks one of the caller's notifications as read
func (c *UserController) MarkNotificationRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid notification id"))
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), userID, notificationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Notification marked as read"})
}

// MarkAllNotificationsRead clears the caller's unread count
func (c *UserController) MarkAllNotificationsRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if _, err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "All notifications marked as read"})
}
