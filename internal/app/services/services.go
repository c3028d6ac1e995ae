// Package services contains the application's business logic. Services
// depend on repository interfaces so they can be exercised with fakes.
package services

import (
	"context"

	"github.com/namansharma28/gravitas-backend/internal/app/repositories"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
	"github.com/namansharma28/gravitas-backend/internal/pkg/email"
)

// ViewCache is the slice of the cache that services use for hot read
// views. Implementations never fail a request.
type ViewCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

func communityDetailKey(handle string) string {
	return "community:" + handle
}

func communityMembersKey(handle string) string {
	return "community:" + handle + ":members"
}

// Services bundles all services for dependency injection
type Services struct {
	AuthService         *AuthService
	AdminService        *AdminService
	CommunityService    *CommunityService
	FollowService       *FollowService
	EventService        *EventService
	UpdateService       *UpdateService
	NotificationService *NotificationService
}

// NewServices creates all services wired to the given repositories
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	adminTokens *auth.AdminTokenService,
	emailService email.Service,
	views ViewCache,
) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.VerificationTokenRepository,
			repos.OTPRepository,
			jwtService,
			emailService,
		),
		AdminService: NewAdminService(
			repos.CommunityRepository,
			repos.NotificationRepository,
			adminTokens,
			views,
		),
		CommunityService: NewCommunityService(
			repos.CommunityRepository,
			repos.MembershipRepository,
			repos.FollowRepository,
			repos.NotificationRepository,
			views,
		),
		FollowService: NewFollowService(
			repos.CommunityRepository,
			repos.FollowRepository,
		),
		EventService: NewEventService(
			repos.CommunityRepository,
			repos.MembershipRepository,
			repos.FollowRepository,
			repos.EventRepository,
			repos.NotificationRepository,
		),
		UpdateService: NewUpdateService(
			repos.CommunityRepository,
			repos.MembershipRepository,
			repos.UpdateRepository,
		),
		NotificationService: NewNotificationService(
			repos.NotificationRepository,
		),
	}
}
