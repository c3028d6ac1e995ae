package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/helpers"
)

// FollowService handles the follow relation between users and communities
type FollowService struct {
	communityRepo repositories.ICommunityRepository
	followRepo    repositories.IFollowRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(
	communityRepo repositories.ICommunityRepository,
	followRepo repositories.IFollowRepository,
) *FollowService {
	return &FollowService{
		communityRepo: communityRepo,
		followRepo:    followRepo,
	}
}

// Follow subscribes the user to an approved community's activity
func (s *FollowService) Follow(ctx context.Context, userID int64, handle string) error {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if community.Status != models.CommunityStatusApproved {
		return apperrors.ErrCommunityNotFound
	}

	if err := s.followRepo.Add(ctx, userID, community.ID); err != nil {
		return err
	}

	log.Info().Int64("userId", userID).Str("handle", handle).Msg("User followed community")
	return nil
}

// Unfollow removes the user's follow of a community
func (s *FollowService) Unfollow(ctx context.Context, userID int64, handle string) error {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return err
	}

	if err := s.followRepo.Remove(ctx, userID, community.ID); err != nil {
		return err
	}

	log.Info().Int64("userId", userID).Str("handle", handle).Msg("User unfollowed community")
	return nil
}

// ListFollowed returns the communities the user follows, most recently
// followed first, with member and upcoming-event counts.
func (s *FollowService) ListFollowed(ctx context.Context, userID int64) ([]*repositories.FollowedCommunity, error) {
	return s.followRepo.ListFollowed(ctx, userID, helpers.FeedLimit)
}
