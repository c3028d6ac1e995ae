package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
)

// AdminService handles admin login and community moderation
type AdminService struct {
	communityRepo    repositories.ICommunityRepository
	notificationRepo repositories.INotificationRepository
	adminTokens      *auth.AdminTokenService
	views            ViewCache
}

// NewAdminService creates a new AdminService
func NewAdminService(
	communityRepo repositories.ICommunityRepository,
	notificationRepo repositories.INotificationRepository,
	adminTokens *auth.AdminTokenService,
	views ViewCache,
) *AdminService {
	return &AdminService{
		communityRepo:    communityRepo,
		notificationRepo: notificationRepo,
		adminTokens:      adminTokens,
		views:            views,
	}
}

// Login verifies the configured admin credentials and issues an admin
// token. The admin token authority is separate from user sessions.
func (s *AdminService) Login(username, password string) (string, error) {
	if !s.adminTokens.CheckCredentials(username, password) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.adminTokens.GenerateToken()
	if err != nil {
		return "", err
	}

	log.Info().Msg("Admin logged in")
	return token, nil
}

// ListPendingCommunities returns communities awaiting moderation,
// newest first
func (s *AdminService) ListPendingCommunities(ctx context.Context) ([]*models.Community, error) {
	return s.communityRepo.ListByStatus(ctx, models.CommunityStatusPending)
}

// ApproveCommunity moves a pending community to approved and notifies
// its creator
func (s *AdminService) ApproveCommunity(ctx context.Context, handle string) (*models.Community, error) {
	return s.moderate(ctx, handle, models.CommunityStatusApproved)
}

// RejectCommunity moves a pending community to rejected and notifies
// its creator
func (s *AdminService) RejectCommunity(ctx context.Context, handle string) (*models.Community, error) {
	return s.moderate(ctx, handle, models.CommunityStatusRejected)
}

func (s *AdminService) moderate(ctx context.Context, handle string, status models.CommunityStatus) (*models.Community, error) {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	if err := s.communityRepo.UpdateStatus(ctx, community.ID, status); err != nil {
		return nil, err
	}
	community.Status = status

	notificationType := models.NotificationCommunityApproved
	title := "Community approved"
	description := fmt.Sprintf("Your community %q has been approved and is now live.", community.Name)
	if status == models.CommunityStatusRejected {
		notificationType = models.NotificationCommunityRejected
		title = "Community rejected"
		description = fmt.Sprintf("Your community %q was not approved.", community.Name)
	}

	notification := &models.Notification{
		UserID:      community.CreatorID,
		Title:       title,
		Description: description,
		Type:        notificationType,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Error().Err(err).Int64("communityId", community.ID).Msg("Failed to notify creator after moderation")
	}

	s.views.Invalidate(ctx, communityDetailKey(handle))

	log.Info().Str("handle", handle).Str("status", string(status)).Msg("Community moderated")
	return community, nil
}
