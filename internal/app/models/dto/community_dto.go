package dto

import (
	"strconv"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
)

// CreateCommunityRequest represents a community creation request
type CreateCommunityRequest struct {
	Name        string  `json:"name" binding:"required"`
	Handle      string  `json:"handle" binding:"required"`
	Description string  `json:"description"`
	Avatar      *string `json:"avatar"`
	Cover       *string `json:"cover"`
}

// CommunityResponse is the public view of a community. Identifiers are
// rendered as strings.
type CommunityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Avatar      *string   `json:"avatar,omitempty"`
	Cover       *string   `json:"cover,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommunityDetailResponse extends CommunityResponse with derived counts and
// the creator, resolved by join at read time.
type CommunityDetailResponse struct {
	CommunityResponse
	MemberCount   int          `json:"memberCount"`
	FollowerCount int          `json:"followerCount"`
	Creator       *UserSummary `json:"creator,omitempty"`
}

// MemberResponse is one row of the community members listing
type MemberResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Image   *string `json:"image,omitempty"`
	Email   string  `json:"email"`
	IsAdmin bool    `json:"isAdmin"`
}

// UserCommunityResponse is one row of the role-annotated "my communities"
// view: admins first, alphabetical thereafter.
type UserCommunityResponse struct {
	CommunityResponse
	Role string `json:"role"`
}

// FollowedCommunityResponse is one row of the followed-communities view with
// its derived counts, sorted by followedAt descending.
type FollowedCommunityResponse struct {
	CommunityResponse
	MemberCount        int       `json:"memberCount"`
	UpcomingEventCount int       `json:"upcomingEventCount"`
	FollowedAt         time.Time `json:"followedAt"`
}

// UserSummary is the embedded public view of a user
type UserSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// NewCommunityResponse maps a community model to its public shape
func NewCommunityResponse(c *models.Community) CommunityResponse {
	return CommunityResponse{
		ID:          strconv.FormatInt(c.ID, 10),
		Name:        c.Name,
		Handle:      c.Handle,
		Description: c.Description,
		Avatar:      c.AvatarURL,
		Cover:       c.CoverURL,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
}

// NewUserSummary maps a user model to its embedded public shape
func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:    strconv.FormatInt(u.ID, 10),
		Name:  u.Name,
		Image: u.Image,
	}
}

// NewMemberResponse maps a membership row with its joined user
func NewMemberResponse(m *models.CommunityMember) MemberResponse {
	resp := MemberResponse{
		ID:      strconv.FormatInt(m.UserID, 10),
		IsAdmin: m.Role == models.MemberRoleAdmin,
	}
	if m.User != nil {
		resp.Name = m.User.Name
		resp.Email = m.User.Email
		resp.Image = m.User.Image
	}
	return resp
}
