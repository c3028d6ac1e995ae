package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/helpers"
)

// UpdateService handles community feed posts
type UpdateService struct {
	communityRepo  repositories.ICommunityRepository
	membershipRepo repositories.IMembershipRepository
	updateRepo     repositories.IUpdateRepository
}

// NewUpdateService creates a new UpdateService
func NewUpdateService(
	communityRepo repositories.ICommunityRepository,
	membershipRepo repositories.IMembershipRepository,
	updateRepo repositories.IUpdateRepository,
) *UpdateService {
	return &UpdateService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		updateRepo:     updateRepo,
	}
}

// Create posts an update to a community's feed. Only community admins
// may post.
func (s *UpdateService) Create(ctx context.Context, userID int64, handle string, req *dto.CreateUpdateRequest) (*models.Update, error) {
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

	update := &models.Update{
		CommunityID: community.ID,
		AuthorID:    userID,
		Content:     req.Content,
		Images:      req.Images,
	}

	updateID, err := s.updateRepo.Create(ctx, update)
	if err != nil {
		return nil, err
	}
	update.ID = updateID

	log.Info().Int64("updateId", updateID).Str("handle", handle).Msg("Update posted")
	return update, nil
}

// ListByCommunity returns an approved community's feed, newest first,
// capped at the fixed feed window.
func (s *UpdateService) ListByCommunity(ctx context.Context, handle string) ([]*models.Update, error) {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if community.Status != models.CommunityStatusApproved {
		return nil, apperrors.ErrCommunityNotFound
	}

	return s.updateRepo.ListByCommunity(ctx, community.ID, helpers.FeedLimit)
}
