package services

import (
	"context"
	"testing"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

func TestFollowRequiresApprovedCommunity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	followRepo := newFakeFollowRepo()
	svc := NewFollowService(communityRepo, followRepo)

	seedCommunity(t, communityRepo, "hidden", 1, models.CommunityStatusPending)
	seedCommunity(t, communityRepo, "gophers", 1, models.CommunityStatusApproved)

	if err := svc.Follow(ctx, 9, "hidden"); err != apperrors.ErrCommunityNotFound {
		t.Fatalf("follow pending err = %v, want ErrCommunityNotFound", err)
	}
	if err := svc.Follow(ctx, 9, "gophers"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := svc.Follow(ctx, 9, "gophers"); err != apperrors.ErrAlreadyFollowing {
		t.Fatalf("second Follow err = %v, want ErrAlreadyFollowing", err)
	}
}

func TestUnfollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	followRepo := newFakeFollowRepo()
	svc := NewFollowService(communityRepo, followRepo)

	seedCommunity(t, communityRepo, "gophers", 1, models.CommunityStatusApproved)

	if err := svc.Unfollow(ctx, 9, "gophers"); err != apperrors.ErrFollowNotFound {
		t.Fatalf("unfollow without follow err = %v, want ErrFollowNotFound", err)
	}

	if err := svc.Follow(ctx, 9, "gophers"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := svc.Unfollow(ctx, 9, "gophers"); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
}
