package models

import "time"

// Notification belongs to a single user. Created server-side; mutated only
// by the read/read-all operations.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	UserID      int64            `json:"userId" db:"user_id"`
	Title       string           `json:"title" db:"title"`
	Description string           `json:"description" db:"description"`
	Type        NotificationType `json:"type" db:"type"`
	Read        bool             `json:"read" db:"read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
