package services

import (
	"context"
	"testing"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
)

func newTestAdminService(communityRepo *fakeCommunityRepo, notificationRepo *fakeNotificationRepo) *AdminService {
	adminTokens := auth.NewAdminTokenService(auth.AdminTokenConfig{
		Username:  "admin",
		Password:  "admin123",
		SecretKey: "admin-secret",
		TokenExp:  time.Hour,
		Issuer:    "gravitas.test",
	})
	return NewAdminService(communityRepo, notificationRepo, adminTokens, &noopCache{})
}

func seedCommunity(t *testing.T, repo *fakeCommunityRepo, handle string, creatorID int64, status models.CommunityStatus) *models.Community {
	t.Helper()
	community := &models.Community{
		Name:      "Test " + handle,
		Handle:    handle,
		Status:    status,
		CreatorID: creatorID,
	}
	id, err := repo.Create(context.Background(), community)
	if err != nil {
		t.Fatalf("seed community: %v", err)
	}
	community.ID = id
	return community
}

func TestAdminLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAdminService(newFakeCommunityRepo(), newFakeNotificationRepo())

	token, err := svc.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty admin token")
	}

	if _, err := svc.Login("admin", "nope"); err != apperrors.ErrInvalidCredentials {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestApproveCommunityNotifiesCreator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	notificationRepo := newFakeNotificationRepo()
	svc := newTestAdminService(communityRepo, notificationRepo)

	seedCommunity(t, communityRepo, "gophers", 5, models.CommunityStatusPending)

	community, err := svc.ApproveCommunity(ctx, "gophers")
	if err != nil {
		t.Fatalf("ApproveCommunity: %v", err)
	}
	if community.Status != models.CommunityStatusApproved {
		t.Errorf("status = %q, want approved", community.Status)
	}

	stored, _ := communityRepo.GetByHandle(ctx, "gophers")
	if stored.Status != models.CommunityStatusApproved {
		t.Errorf("persisted status = %q, want approved", stored.Status)
	}

	if got := notificationRepo.byUserAndType(5, models.NotificationCommunityApproved); got != 1 {
		t.Errorf("creator approval notifications = %d, want 1", got)
	}
}

func TestRejectCommunityNotifiesCreator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	notificationRepo := newFakeNotificationRepo()
	svc := newTestAdminService(communityRepo, notificationRepo)

	seedCommunity(t, communityRepo, "gophers", 5, models.CommunityStatusPending)

	community, err := svc.RejectCommunity(ctx, "gophers")
	if err != nil {
		t.Fatalf("RejectCommunity: %v", err)
	}
	if community.Status != models.CommunityStatusRejected {
		t.Errorf("status = %q, want rejected", community.Status)
	}
	if got := notificationRepo.byUserAndType(5, models.NotificationCommunityRejected); got != 1 {
		t.Errorf("creator rejection notifications = %d, want 1", got)
	}
}

// Moderation is a one-way gate: approved and rejected are terminal.
func TestModerationRequiresPendingStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	svc := newTestAdminService(communityRepo, newFakeNotificationRepo())

	seedCommunity(t, communityRepo, "approved-club", 1, models.CommunityStatusApproved)
	seedCommunity(t, communityRepo, "rejected-club", 1, models.CommunityStatusRejected)

	if _, err := svc.ApproveCommunity(ctx, "approved-club"); err != apperrors.ErrCommunityNotPending {
		t.Errorf("re-approve err = %v, want ErrCommunityNotPending", err)
	}
	if _, err := svc.ApproveCommunity(ctx, "rejected-club"); err != apperrors.ErrCommunityNotPending {
		t.Errorf("approve rejected err = %v, want ErrCommunityNotPending", err)
	}
	if _, err := svc.RejectCommunity(ctx, "approved-club"); err != apperrors.ErrCommunityNotPending {
		t.Errorf("reject approved err = %v, want ErrCommunityNotPending", err)
	}
	if _, err := svc.ApproveCommunity(ctx, "missing"); err != apperrors.ErrCommunityNotFound {
		t.Errorf("approve missing err = %v, want ErrCommunityNotFound", err)
	}
}

func TestListPendingCommunities(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	communityRepo := newFakeCommunityRepo()
	svc := newTestAdminService(communityRepo, newFakeNotificationRepo())

	seedCommunity(t, communityRepo, "one", 1, models.CommunityStatusPending)
	seedCommunity(t, communityRepo, "two", 1, models.CommunityStatusApproved)
	seedCommunity(t, communityRepo, "three", 1, models.CommunityStatusPending)

	pending, err := svc.ListPendingCommunities(ctx)
	if err != nil {
		t.Fatalf("ListPendingCommunities: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}
	for _, c := range pending {
		if c.Status != models.CommunityStatusPending {
			t.Errorf("community %q status = %q, want pending", c.Handle, c.Status)
		}
	}
}
