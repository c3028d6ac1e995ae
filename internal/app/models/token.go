package models

import "time"

// RefreshToken is an opaque long-lived credential exchanged for new
// access tokens. Tokens are single-use; rotation revokes the old row.
type RefreshToken struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Token      string    `json:"token" db:"token"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	Revoked    bool      `json:"revoked" db:"revoked"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// IsExpired checks whether the token has passed its expiry date
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiryDate)
}

// VerificationToken is a single-use email verification link token
type VerificationToken struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Token      string    `json:"token" db:"token"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// EmailOTP is a short-lived one-time code delivered by email. At most
// one active code exists per email address.
type EmailOTP struct {
	ID         int64     `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	OTP        string    `json:"otp" db:"otp"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
