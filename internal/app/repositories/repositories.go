// Package repositories contains the database access layer. Every repository
// borrows the single shared pgx pool; none owns a connection of its own.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	UserRepository              IUserRepository
	CommunityRepository         ICommunityRepository
	MembershipRepository        IMembershipRepository
	FollowRepository            IFollowRepository
	EventRepository             IEventRepository
	UpdateRepository            IUpdateRepository
	NotificationRepository      INotificationRepository
	TokenRepository             ITokenRepository
	VerificationTokenRepository IVerificationTokenRepository
	OTPRepository               IOTPRepository
}

// NewRepositories creates all repositories sharing the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:              NewUserRepository(db),
		CommunityRepository:         NewCommunityRepository(db),
		MembershipRepository:        NewMembershipRepository(db),
		FollowRepository:            NewFollowRepository(db),
		EventRepository:             NewEventRepository(db),
		UpdateRepository:            NewUpdateRepository(db),
		NotificationRepository:      NewNotificationRepository(db),
		TokenRepository:             NewTokenRepository(db),
		VerificationTokenRepository: NewVerificationTokenRepository(db),
		OTPRepository:               NewOTPRepository(db),
	}
}
