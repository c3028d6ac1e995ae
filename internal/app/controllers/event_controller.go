package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
)

// EventController handles event and RSVP operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, logger zerolog.Logger) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger,
	}
}

// Create adds an event to a community the caller administers
func (c *EventController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Title, date and time are required"))
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), userID, ctx.Param("handle"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewEventResponse(event))
}

// ListByCommunity returns the community's events, upcoming first
func (c *EventController) ListByCommunity(ctx *gin.Context) {
	events, err := c.eventService.ListByCommunity(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, dto.NewEventResponse(event))
	}
	ctx.JSON(http.StatusOK, resp)
}

// RSVP records the caller's attendance relation to an event
func (c *EventController) RSVP(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid event id"))
		return
	}

	var req dto.RSVPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("RSVP kind must be attending or interested"))
		return
	}

	event, err := c.eventService.RSVP(ctx.Request.Context(), userID, eventID, models.RSVPKind(req.Kind))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewEventResponse(event))
}
