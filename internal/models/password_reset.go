package models

import (
	"crypto/subtle"
	"time"
)

// PasswordReset is one issued reset code. Entries are never deleted; the
// most recent entry for a user is the one that gets validated.
type PasswordReset struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// Valid reports whether candidate matches the stored code, now is strictly
// before the expiration window, and the entry has not been used.
func (p *PasswordReset) Valid(candidate string, now time.Time) bool {
	if p == nil {
		return false
	}
	match := subtle.ConstantTimeCompare([]byte(p.Code), []byte(candidate)) == 1
	return match && now.Before(p.ExpiresAt) && !p.Used
}

type ResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// Missing fields are not a binding error here: they simply fail validation
// with the same answer as a wrong code.
type ValidateCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}
