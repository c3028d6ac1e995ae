package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/helpers"
)

// EventService handles community events and RSVPs
type EventService struct {
	communityRepo    repositories.ICommunityRepository
	membershipRepo   repositories.IMembershipRepository
	followRepo       repositories.IFollowRepository
	eventRepo        repositories.IEventRepository
	notificationRepo repositories.INotificationRepository
}

// NewEventService creates a new EventService
func NewEventService(
	communityRepo repositories.ICommunityRepository,
	membershipRepo repositories.IMembershipRepository,
	followRepo repositories.IFollowRepository,
	eventRepo repositories.IEventRepository,
	notificationRepo repositories.INotificationRepository,
) *EventService {
	return &EventService{
		communityRepo:    communityRepo,
		membershipRepo:   membershipRepo,
		followRepo:       followRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
	}
}

// Create adds an event to a community. Only community admins may
// create events; followers are notified.
func (s *EventService) Create(ctx context.Context, userID int64, handle string, req *dto.CreateEventRequest) (*models.Event, error) {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	isAdmin, err := s.membershipRepo.IsAdmin(ctx, community.ID, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperrors.ErrNotCommunityAdmin
	}

	eventDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.ErrBadRequest
	}

	event := &models.Event{
		CommunityID: community.ID,
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		EventTime:   req.Time,
		Location:    req.Location,
	}

	eventID, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = eventID

	s.notifyFollowers(ctx, community, event)

	log.Info().Int64("eventId", eventID).Str("handle", handle).Msg("Event created")
	return event, nil
}

func (s *EventService) notifyFollowers(ctx context.Context, community *models.Community, event *models.Event) {
	followerIDs, err := s.followRepo.FollowerIDs(ctx, community.ID)
	if err != nil {
		log.Error().Err(err).Int64("communityId", community.ID).Msg("Failed to load followers for event notification")
		return
	}

	err = s.notificationRepo.CreateForUsers(ctx, followerIDs, models.NotificationNewEvent,
		"New event", fmt.Sprintf("%s scheduled %q for %s.", community.Name, event.Title, event.EventDate.Format("2006-01-02")))
	if err != nil {
		log.Error().Err(err).Int64("eventId", event.ID).Msg("Failed to notify followers of new event")
	}
}

// ListByCommunity returns an approved community's events, upcoming first
func (s *EventService) ListByCommunity(ctx context.Context, handle string) ([]*models.Event, error) {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if community.Status != models.CommunityStatusApproved {
		return nil, apperrors.ErrCommunityNotFound
	}

	return s.eventRepo.ListByCommunity(ctx, community.ID, helpers.MaxListLimit)
}

// RSVP records the user's attendance relation to an event. Repeating
// with a different kind overwrites the previous one.
func (s *EventService) RSVP(ctx context.Context, userID, eventID int64, kind models.RSVPKind) (*models.Event, error) {
	if kind != models.RSVPAttending && kind != models.RSVPInterested {
		return nil, apperrors.ErrInvalidRSVPKind
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.UpsertRSVP(ctx, eventID, userID, kind); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, eventID)
}
