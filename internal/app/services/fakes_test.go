package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

// In-memory fakes implementing the repository interfaces, mirroring the
// real repositories' error contracts.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	copied := *user
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.users[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) MarkEmailVerified(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	u.EmailVerified = &now
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeTokenRepo) CreateToken(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(_ context.Context, tokenValue string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenValue]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if t.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if t.IsExpired() {
		return nil, apperrors.ErrTokenExpired
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTokenRepo) RevokeToken(_ context.Context, tokenValue string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenValue]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.Revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeVerificationTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.VerificationToken
}

func newFakeVerificationTokenRepo() *fakeVerificationTokenRepo {
	return &fakeVerificationTokenRepo{tokens: map[string]*models.VerificationToken{}}
}

func (r *fakeVerificationTokenRepo) Create(_ context.Context, token *models.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for v, t := range r.tokens {
		if t.UserID == token.UserID {
			delete(r.tokens, v)
		}
	}
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeVerificationTokenRepo) Consume(_ context.Context, tokenValue string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenValue]
	if !ok || time.Now().After(t.ExpiryDate) {
		return 0, apperrors.ErrInvalidVerificationToken
	}
	delete(r.tokens, tokenValue)
	return t.UserID, nil
}

func (r *fakeVerificationTokenRepo) DeleteByUserID(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for v, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, v)
		}
	}
	return nil
}

type fakeOTPRepo struct {
	mu   sync.Mutex
	otps map[string]*models.EmailOTP // keyed by email; one active code each
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{otps: map[string]*models.EmailOTP{}}
}

func (r *fakeOTPRepo) Create(_ context.Context, otp *models.EmailOTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *otp
	r.otps[otp.Email] = &copied
	return nil
}

func (r *fakeOTPRepo) Consume(_ context.Context, email, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	otp, ok := r.otps[email]
	if !ok || otp.OTP != code || time.Now().After(otp.ExpiryDate) {
		return apperrors.ErrInvalidOTP
	}
	delete(r.otps, email)
	return nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeCommunityRepo struct {
	mu          sync.Mutex
	nextID      int64
	communities map[int64]*models.Community
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{communities: map[int64]*models.Community{}}
}

func (r *fakeCommunityRepo) Create(_ context.Context, community *models.Community) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.communities {
		if c.Handle == community.Handle {
			return 0, apperrors.ErrHandleAlreadyExists
		}
	}
	r.nextID++
	copied := *community
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.communities[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeCommunityRepo) GetByHandle(_ context.Context, handle string) (*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.communities {
		if c.Handle == handle {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCommunityNotFound
}

func (r *fakeCommunityRepo) GetByID(_ context.Context, id int64) (*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.communities[id]
	if !ok {
		return nil, apperrors.ErrCommunityNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCommunityRepo) ListByStatus(_ context.Context, status models.CommunityStatus) ([]*models.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Community
	for _, c := range r.communities {
		if c.Status == status {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommunityRepo) UpdateStatus(_ context.Context, id int64, status models.CommunityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.communities[id]
	if !ok {
		return apperrors.ErrCommunityNotFound
	}
	if c.Status != models.CommunityStatusPending {
		return apperrors.ErrCommunityNotPending
	}
	c.Status = status
	return nil
}

func (r *fakeCommunityRepo) ListAdministered(_ context.Context, userID int64) ([]*models.Community, error) {
	return nil, nil
}

func (r *fakeCommunityRepo) ListForUser(_ context.Context, userID int64) ([]*repositories.UserCommunity, error) {
	return nil, nil
}

type membershipKey struct {
	communityID int64
	userID      int64
}

type fakeMembershipRepo struct {
	mu      sync.Mutex
	members map[membershipKey]models.MemberRole
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{members: map[membershipKey]models.MemberRole{}}
}

func (r *fakeMembershipRepo) Add(_ context.Context, communityID, userID int64, role models.MemberRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := membershipKey{communityID, userID}
	if _, ok := r.members[key]; ok {
		return apperrors.ErrAlreadyMember
	}
	r.members[key] = role
	return nil
}

func (r *fakeMembershipRepo) Remove(_ context.Context, communityID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := membershipKey{communityID, userID}
	if _, ok := r.members[key]; !ok {
		return apperrors.ErrMembershipNotFound
	}
	delete(r.members, key)
	return nil
}

func (r *fakeMembershipRepo) ListByCommunity(_ context.Context, communityID int64) ([]*models.CommunityMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CommunityMember
	for key, role := range r.members {
		if key.communityID == communityID {
			out = append(out, &models.CommunityMember{
				CommunityID: key.communityID,
				UserID:      key.userID,
				Role:        role,
			})
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) IsAdmin(_ context.Context, communityID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[membershipKey{communityID, userID}] == models.MemberRoleAdmin, nil
}

func (r *fakeMembershipRepo) CountByCommunity(_ context.Context, communityID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for key := range r.members {
		if key.communityID == communityID {
			count++
		}
	}
	return count, nil
}

func (r *fakeMembershipRepo) AdminIDs(_ context.Context, communityID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for key, role := range r.members {
		if key.communityID == communityID && role == models.MemberRoleAdmin {
			ids = append(ids, key.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type followKey struct {
	userID      int64
	communityID int64
}

type fakeFollowRepo struct {
	mu      sync.Mutex
	follows map[followKey]time.Time
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: map[followKey]time.Time{}}
}

func (r *fakeFollowRepo) Add(_ context.Context, userID, communityID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := followKey{userID, communityID}
	if _, ok := r.follows[key]; ok {
		return apperrors.ErrAlreadyFollowing
	}
	r.follows[key] = time.Now()
	return nil
}

func (r *fakeFollowRepo) Remove(_ context.Context, userID, communityID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := followKey{userID, communityID}
	if _, ok := r.follows[key]; !ok {
		return apperrors.ErrFollowNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *fakeFollowRepo) ListFollowed(_ context.Context, userID int64, limit int) ([]*repositories.FollowedCommunity, error) {
	return nil, nil
}

func (r *fakeFollowRepo) FollowerIDs(_ context.Context, communityID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for key := range r.follows {
		if key.communityID == communityID {
			ids = append(ids, key.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFollowRepo) CountByCommunity(_ context.Context, communityID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for key := range r.follows {
		if key.communityID == communityID {
			count++
		}
	}
	return count, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	copied := *n
	copied.ID = r.nextID
	copied.CreatedAt = time.Now()
	r.notifications = append(r.notifications, &copied)
	return copied.ID, nil
}

func (r *fakeNotificationRepo) CreateForUsers(ctx context.Context, userIDs []int64, notificationType models.NotificationType, title, description string) error {
	for _, userID := range userIDs {
		_, err := r.Create(ctx, &models.Notification{
			UserID:      userID,
			Title:       title,
			Description: description,
			Type:        notificationType,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if r.notifications[i].UserID == userID {
			copied := *r.notifications[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, notificationID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}

// byUserAndType counts stored notifications matching a recipient and type.
func (r *fakeNotificationRepo) byUserAndType(userID int64, notificationType models.NotificationType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && n.Type == notificationType {
			count++
		}
	}
	return count
}

// fakeEmailService records sent messages instead of dialing SMTP.
type fakeEmailService struct {
	mu       sync.Mutex
	otps     map[string]string // email -> last OTP
	tokens   map[string]string // email -> last verification token
	failNext bool
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{otps: map[string]string{}, tokens: map[string]string{}}
}

func (s *fakeEmailService) SendOTPEmail(toEmail, _, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return errSMTPDown
	}
	s.otps[strings.ToLower(toEmail)] = otp
	return nil
}

func (s *fakeEmailService) SendVerificationEmail(toEmail, _, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[strings.ToLower(toEmail)] = token
	return nil
}

func (s *fakeEmailService) lastOTP(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[strings.ToLower(email)]
}

var errSMTPDown = &smtpDownError{}

type smtpDownError struct{}

func (*smtpDownError) Error() string { return "smtp unavailable" }

// noopCache satisfies ViewCache and records invalidated keys.
type noopCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *noopCache) GetJSON(context.Context, string, interface{}) bool { return false }
func (c *noopCache) SetJSON(context.Context, string, interface{})     {}
func (c *noopCache) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, keys...)
}
