package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

type rsvpKey struct {
	eventID int64
	userID  int64
}

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
	rsvps  map[rsvpKey]models.RSVPKind
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: map[int64]*models.Event{},
		rsvps:  map[rsvpKey]models.RSVPKind{},
	}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copied := *event
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.events[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *e
	for key, kind := range r.rsvps {
		if key.eventID != id {
			continue
		}
		switch kind {
		case models.RSVPAttending:
			copied.AttendeeCount++
		case models.RSVPInterested:
			copied.InterestedCount++
		}
	}
	return &copied, nil
}

func (r *fakeEventRepo) ListByCommunity(ctx context.Context, communityID int64, limit int) ([]*models.Event, error) {
	r.mu.Lock()
	ids := make([]int64, 0, len(r.events))
	for id, e := range r.events {
		if e.CommunityID == communityID {
			ids = append(ids, id)
		}
	}
	r.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*models.Event
	for _, id := range ids {
		if len(out) == limit {
			break
		}
		e, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) UpsertRSVP(_ context.Context, eventID, userID int64, kind models.RSVPKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rsvps[rsvpKey{eventID, userID}] = kind
	return nil
}

type eventServiceDeps struct {
	communityRepo    *fakeCommunityRepo
	membershipRepo   *fakeMembershipRepo
	followRepo       *fakeFollowRepo
	eventRepo        *fakeEventRepo
	notificationRepo *fakeNotificationRepo
}

func newTestEventService() (*EventService, eventServiceDeps) {
	deps := eventServiceDeps{
		communityRepo:    newFakeCommunityRepo(),
		membershipRepo:   newFakeMembershipRepo(),
		followRepo:       newFakeFollowRepo(),
		eventRepo:        newFakeEventRepo(),
		notificationRepo: newFakeNotificationRepo(),
	}
	svc := NewEventService(deps.communityRepo, deps.membershipRepo, deps.followRepo, deps.eventRepo, deps.notificationRepo)
	return svc, deps
}

func (d eventServiceDeps) seedApproved(t *testing.T, handle string, adminID int64) *models.Community {
	t.Helper()
	ctx := context.Background()
	id, err := d.communityRepo.Create(ctx, &models.Community{
		Name:      handle,
		Handle:    handle,
		Status:    models.CommunityStatusPending,
		CreatorID: adminID,
	})
	if err != nil {
		t.Fatalf("seed community: %v", err)
	}
	if err := d.communityRepo.UpdateStatus(ctx, id, models.CommunityStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := d.membershipRepo.Add(ctx, id, adminID, models.MemberRoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	community, err := d.communityRepo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get community: %v", err)
	}
	return community
}

func TestCreateEventRequiresCommunityAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()
	deps.seedApproved(t, "gophers", 1)

	req := &dto.CreateEventRequest{Title: "Meetup", Date: "2026-09-12", Time: "18:00"}

	if _, err := svc.Create(ctx, 9, "gophers", req); err != apperrors.ErrNotCommunityAdmin {
		t.Fatalf("non-admin Create err = %v, want ErrNotCommunityAdmin", err)
	}
	if _, err := svc.Create(ctx, 1, "gophers", req); err != nil {
		t.Fatalf("admin Create: %v", err)
	}
}

func TestCreateEventRejectsMalformedDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()
	deps.seedApproved(t, "gophers", 1)

	for _, date := range []string{"", "12-09-2026", "2026/09/12", "next friday"} {
		req := &dto.CreateEventRequest{Title: "Meetup", Date: date, Time: "18:00"}
		if _, err := svc.Create(ctx, 1, "gophers", req); err != apperrors.ErrBadRequest {
			t.Errorf("Create(date=%q) err = %v, want ErrBadRequest", date, err)
		}
	}
}

func TestCreateEventNotifiesFollowers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()
	community := deps.seedApproved(t, "gophers", 1)

	for _, followerID := range []int64{5, 6} {
		if err := deps.followRepo.Add(ctx, followerID, community.ID); err != nil {
			t.Fatalf("follow: %v", err)
		}
	}

	if _, err := svc.Create(ctx, 1, "gophers", &dto.CreateEventRequest{Title: "Meetup", Date: "2026-09-12", Time: "18:00"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, followerID := range []int64{5, 6} {
		if got := deps.notificationRepo.byUserAndType(followerID, models.NotificationNewEvent); got != 1 {
			t.Errorf("follower %d notifications = %d, want 1", followerID, got)
		}
	}
}

func TestRSVPOverwritesPreviousKind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()
	deps.seedApproved(t, "gophers", 1)

	event, err := svc.Create(ctx, 1, "gophers", &dto.CreateEventRequest{Title: "Meetup", Date: "2026-09-12", Time: "18:00"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.RSVP(ctx, 9, event.ID, models.RSVPAttending)
	if err != nil {
		t.Fatalf("RSVP: %v", err)
	}
	if got.AttendeeCount != 1 || got.InterestedCount != 0 {
		t.Fatalf("counts after attending = (%d, %d), want (1, 0)", got.AttendeeCount, got.InterestedCount)
	}

	got, err = svc.RSVP(ctx, 9, event.ID, models.RSVPInterested)
	if err != nil {
		t.Fatalf("second RSVP: %v", err)
	}
	if got.AttendeeCount != 0 || got.InterestedCount != 1 {
		t.Fatalf("counts after switch = (%d, %d), want (0, 1)", got.AttendeeCount, got.InterestedCount)
	}
}

func TestRSVPValidatesKindAndEvent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()
	deps.seedApproved(t, "gophers", 1)

	if _, err := svc.RSVP(ctx, 9, 1, models.RSVPKind("maybe")); err != apperrors.ErrInvalidRSVPKind {
		t.Fatalf("bad kind err = %v, want ErrInvalidRSVPKind", err)
	}
	if _, err := svc.RSVP(ctx, 9, 404, models.RSVPAttending); err != apperrors.ErrEventNotFound {
		t.Fatalf("missing event err = %v, want ErrEventNotFound", err)
	}
}

func TestListEventsRequiresApprovedCommunity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, deps := newTestEventService()

	if _, err := deps.communityRepo.Create(ctx, &models.Community{
		Name: "hidden", Handle: "hidden", Status: models.CommunityStatusPending, CreatorID: 1,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.ListByCommunity(ctx, "hidden"); err != apperrors.ErrCommunityNotFound {
		t.Fatalf("list pending err = %v, want ErrCommunityNotFound", err)
	}
}
