package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/helpers"
)

// CommunityService handles community lifecycle and membership
type CommunityService struct {
	communityRepo    repositories.ICommunityRepository
	membershipRepo   repositories.IMembershipRepository
	followRepo       repositories.IFollowRepository
	notificationRepo repositories.INotificationRepository
	views            ViewCache
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	communityRepo repositories.ICommunityRepository,
	membershipRepo repositories.IMembershipRepository,
	followRepo repositories.IFollowRepository,
	notificationRepo repositories.INotificationRepository,
	views ViewCache,
) *CommunityService {
	return &CommunityService{
		communityRepo:    communityRepo,
		membershipRepo:   membershipRepo,
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		views:            views,
	}
}

// Create registers a new community in pending status. The creator
// becomes its first admin member immediately; moderation gates only
// public visibility.
func (s *CommunityService) Create(ctx context.Context, creatorID int64, req *dto.CreateCommunityRequest) (*models.Community, error) {
	handle := strings.ToLower(strings.TrimSpace(req.Handle))
	if !helpers.IsValidHandle(handle) {
		return nil, apperrors.ErrInvalidHandle
	}

	community := &models.Community{
		Name:        strings.TrimSpace(req.Name),
		Handle:      handle,
		Description: req.Description,
		AvatarURL:   req.Avatar,
		CoverURL:    req.Cover,
		Status:      models.CommunityStatusPending,
		CreatorID:   creatorID,
	}

	communityID, err := s.communityRepo.Create(ctx, community)
	if err != nil {
		return nil, err
	}
	community.ID = communityID

	if err := s.membershipRepo.Add(ctx, communityID, creatorID, models.MemberRoleAdmin); err != nil {
		return nil, err
	}

	log.Info().Int64("communityId", communityID).Str("handle", handle).Msg("Community created, approval pending")
	return community, nil
}

// GetDetail returns the cached detail view of a community: the public
// fields plus member count, follower count and the creator.
func (s *CommunityService) GetDetail(ctx context.Context, handle string) (*dto.CommunityDetailResponse, error) {
	key := communityDetailKey(handle)

	var cached dto.CommunityDetailResponse
	if s.views.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	memberCount, err := s.membershipRepo.CountByCommunity(ctx, community.ID)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.followRepo.CountByCommunity(ctx, community.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.CommunityDetailResponse{
		CommunityResponse: dto.NewCommunityResponse(community),
		MemberCount:       memberCount,
		FollowerCount:     followerCount,
		Creator:           dto.NewUserSummary(community.Creator),
	}

	s.views.SetJSON(ctx, key, detail)
	return detail, nil
}

// ListMembers returns the community's members, admins first and then
// by name.
func (s *CommunityService) ListMembers(ctx context.Context, handle string) ([]*models.CommunityMember, error) {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}

	return s.membershipRepo.ListByCommunity(ctx, community.ID)
}

// ListForUser returns the communities the user belongs to or created.
// Rejected communities appear only for their creator.
func (s *CommunityService) ListForUser(ctx context.Context, userID int64) ([]*repositories.UserCommunity, error) {
	return s.communityRepo.ListForUser(ctx, userID)
}

// ListAdministered returns the approved communities the user administers
func (s *CommunityService) ListAdministered(ctx context.Context, userID int64) ([]*models.Community, error) {
	return s.communityRepo.ListAdministered(ctx, userID)
}

// Join adds the user as a member of an approved community and notifies
// the community's admins.
func (s *CommunityService) Join(ctx context.Context, userID int64, handle string) error {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return err
	}
	if community.Status != models.CommunityStatusApproved {
		return apperrors.ErrCommunityNotFound
	}

	if err := s.membershipRepo.Add(ctx, community.ID, userID, models.MemberRoleMember); err != nil {
		return err
	}

	s.views.Invalidate(ctx, communityDetailKey(handle), communityMembersKey(handle))
	s.notifyAdmins(ctx, community, userID)

	log.Info().Int64("userId", userID).Str("handle", handle).Msg("User joined community")
	return nil
}

func (s *CommunityService) notifyAdmins(ctx context.Context, community *models.Community, joinerID int64) {
	adminIDs, err := s.membershipRepo.AdminIDs(ctx, community.ID)
	if err != nil {
		log.Error().Err(err).Int64("communityId", community.ID).Msg("Failed to load admins for join notification")
		return
	}

	// Admins don't need to hear about their own join.
	recipients := adminIDs[:0]
	for _, id := range adminIDs {
		if id != joinerID {
			recipients = append(recipients, id)
		}
	}

	err = s.notificationRepo.CreateForUsers(ctx, recipients, models.NotificationNewMember,
		"New member", fmt.Sprintf("A new member joined %s.", community.Name))
	if err != nil {
		log.Error().Err(err).Int64("communityId", community.ID).Msg("Failed to notify admins of new member")
	}
}

// Leave removes the user's membership. The community's last admin may
// leave; moderation tooling can recover such communities.
func (s *CommunityService) Leave(ctx context.Context, userID int64, handle string) error {
	community, err := s.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.Remove(ctx, community.ID, userID); err != nil {
		return err
	}

	s.views.Invalidate(ctx, communityDetailKey(handle), communityMembersKey(handle))

	log.Info().Int64("userId", userID).Str("handle", handle).Msg("User left community")
	return nil
}
