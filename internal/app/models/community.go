package models

import "time"

// Community represents a user community identified by its unique handle
type Community struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Handle      string          `json:"handle" db:"handle"`
	Description string          `json:"description" db:"description"`
	AvatarURL   *string         `json:"avatar,omitempty" db:"avatar_url"`
	CoverURL    *string         `json:"cover,omitempty" db:"cover_url"`
	Status      CommunityStatus `json:"status" db:"status"`
	CreatorID   int64           `json:"creatorId" db:"creator_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	Creator *User `json:"creator,omitempty"`
}

// CommunityMember represents a user's membership in a community
type CommunityMember struct {
	ID          int64      `json:"id" db:"id"`
	CommunityID int64      `json:"communityId" db:"community_id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joinedAt" db:"joined_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
