package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

type fakeUpdateRepo struct {
	mu      sync.Mutex
	nextID  int64
	updates []*models.Update
}

func newFakeUpdateRepo() *fakeUpdateRepo {
	return &fakeUpdateRepo{}
}

func (r *fakeUpdateRepo) Create(_ context.Context, update *models.Update) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copied := *update
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.updates = append(r.updates, &copied)
	return copied.ID, nil
}

func (r *fakeUpdateRepo) ListByCommunity(_ context.Context, communityID int64, limit int) ([]*models.Update, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Update
	for i := len(r.updates) - 1; i >= 0 && len(out) < limit; i-- {
		if r.updates[i].CommunityID == communityID {
			copied := *r.updates[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newTestUpdateService() (*UpdateService, *fakeCommunityRepo, *fakeMembershipRepo, *fakeUpdateRepo) {
	communityRepo := newFakeCommunityRepo()
	membershipRepo := newFakeMembershipRepo()
	updateRepo := newFakeUpdateRepo()
	return NewUpdateService(communityRepo, membershipRepo, updateRepo), communityRepo, membershipRepo, updateRepo
}

func TestCreateUpdateRequiresCommunityAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, communityRepo, membershipRepo, _ := newTestUpdateService()
	community := seedCommunity(t, communityRepo, "gophers", 1, models.CommunityStatusApproved)
	if err := membershipRepo.Add(ctx, community.ID, 1, models.MemberRoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := membershipRepo.Add(ctx, community.ID, 9, models.MemberRoleMember); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	req := &dto.CreateUpdateRequest{Content: "release party next week"}

	if _, err := svc.Create(ctx, 9, "gophers", req); err != apperrors.ErrNotCommunityAdmin {
		t.Fatalf("member Create err = %v, want ErrNotCommunityAdmin", err)
	}

	update, err := svc.Create(ctx, 1, "gophers", req)
	if err != nil {
		t.Fatalf("admin Create: %v", err)
	}
	if update.AuthorID != 1 || update.CommunityID != community.ID {
		t.Errorf("update attribution = (author %d, community %d), want (1, %d)", update.AuthorID, update.CommunityID, community.ID)
	}
}

func TestListUpdatesNewestFirstAndGated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, communityRepo, membershipRepo, _ := newTestUpdateService()
	community := seedCommunity(t, communityRepo, "gophers", 1, models.CommunityStatusApproved)
	seedCommunity(t, communityRepo, "hidden", 1, models.CommunityStatusPending)
	if err := membershipRepo.Add(ctx, community.ID, 1, models.MemberRoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.Create(ctx, 1, "gophers", &dto.CreateUpdateRequest{Content: content}); err != nil {
			t.Fatalf("Create(%q): %v", content, err)
		}
	}

	updates, err := svc.ListByCommunity(ctx, "gophers")
	if err != nil {
		t.Fatalf("ListByCommunity: %v", err)
	}
	if len(updates) != 3 {
		t.Fatalf("len(updates) = %d, want 3", len(updates))
	}
	if updates[0].Content != "third" {
		t.Errorf("updates[0].Content = %q, want newest first", updates[0].Content)
	}

	if _, err := svc.ListByCommunity(ctx, "hidden"); err != apperrors.ErrCommunityNotFound {
		t.Fatalf("list pending err = %v, want ErrCommunityNotFound", err)
	}
}
