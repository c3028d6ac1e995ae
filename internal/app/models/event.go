package models

import "time"

// Event represents an event hosted by a community
type Event struct {
	ID          int64     `json:"id" db:"id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	CreatorID   int64     `json:"creatorId" db:"creator_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	EventDate   time.Time `json:"date" db:"event_date"`
	EventTime   string    `json:"time" db:"event_time"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Derived fields, filled by list queries
	AttendeeCount   int `json:"attendeeCount"`
	InterestedCount int `json:"interestedCount"`
}

// EventRSVP links a user to an event as attending or interested. A user has
// at most one RSVP per event; changing kind overwrites the previous one.
type EventRSVP struct {
	ID        int64     `json:"id" db:"id"`
	EventID   int64     `json:"eventId" db:"event_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Kind      RSVPKind  `json:"kind" db:"kind"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
