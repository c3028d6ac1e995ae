package models

import "time"

// Update is a post published to a community's feed. The author is resolved
// by join at read time; no author fields are denormalized into the row.
type Update struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	Content     string    `json:"content" db:"content"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}
