package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Email         string     `json:"email" db:"email"`
	Password      string     `json:"-" db:"password_hash"`
	Image         *string    `json:"image,omitempty" db:"image"`
	EmailVerified *time.Time `json:"emailVerified,omitempty" db:"email_verified"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// IsVerified reports whether the user's email has been verified.
func (u *User) IsVerified() bool {
	return u.EmailVerified != nil
}
