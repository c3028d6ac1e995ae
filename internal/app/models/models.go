package models

// CommunityStatus drives a community's visibility. `pending` is the initial
// state; `approved` and `rejected` are terminal.
type CommunityStatus string

const (
	CommunityStatusPending  CommunityStatus = "pending"
	CommunityStatusApproved CommunityStatus = "approved"
	CommunityStatusRejected CommunityStatus = "rejected"
)

// MemberRole defines a user's role within a community
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// RSVPKind defines the attendance relation between a user and an event
type RSVPKind string

const (
	RSVPAttending  RSVPKind = "attending"
	RSVPInterested RSVPKind = "interested"
)

// NotificationType labels server-created notifications
type NotificationType string

const (
	NotificationCommunityApproved NotificationType = "community_approved"
	NotificationCommunityRejected NotificationType = "community_rejected"
	NotificationNewMember         NotificationType = "new_member"
	NotificationNewEvent          NotificationType = "new_event"
)
