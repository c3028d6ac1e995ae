package models

import "time"

// Follow links a user to a community they follow. The pair is unique.
type Follow struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
