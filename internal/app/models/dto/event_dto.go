package dto

import (
	"strconv"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
)

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location"`
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID              string    `json:"id"`
	CommunityID     string    `json:"communityId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	AttendeeCount   int       `json:"attendeeCount"`
	InterestedCount int       `json:"interestedCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RSVPRequest selects the attendance relation for an event
type RSVPRequest struct {
	Kind string `json:"kind" binding:"required,oneof=attending interested"`
}

// NewEventResponse maps an event model to its public shape
func NewEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:              strconv.FormatInt(e.ID, 10),
		CommunityID:     strconv.FormatInt(e.CommunityID, 10),
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.EventDate.Format("2006-01-02"),
		Time:            e.EventTime,
		Location:        e.Location,
		AttendeeCount:   e.AttendeeCount,
		InterestedCount: e.InterestedCount,
		CreatedAt:       e.CreatedAt,
	}
}
