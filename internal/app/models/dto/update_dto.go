package dto

import (
	"strconv"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
)

// CreateUpdateRequest represents a community update (post) creation request
type CreateUpdateRequest struct {
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
}

// UpdateResponse is the public view of a community update. The author block
// is resolved by join at read time.
type UpdateResponse struct {
	ID          string       `json:"id"`
	CommunityID string       `json:"communityId"`
	Content     string       `json:"content"`
	Images      []string     `json:"images"`
	Author      *UserSummary `json:"author,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewUpdateResponse maps an update model to its public shape
func NewUpdateResponse(u *models.Update) UpdateResponse {
	images := u.Images
	if images == nil {
		images = []string{}
	}
	return UpdateResponse{
		ID:          strconv.FormatInt(u.ID, 10),
		CommunityID: strconv.FormatInt(u.CommunityID, 10),
		Content:     u.Content,
		Images:      images,
		Author:      NewUserSummary(u.Author),
		CreatedAt:   u.CreatedAt,
	}
}
