package models

import "time"

// Verification code purposes.
const (
	CodePurposeRegister = "register"
	CodePurposeReset    = "reset"
)

// VerificationCode is one issued 6-digit code. A row is never updated except
// for the Used flip, which happens at most once.
type VerificationCode struct {
	ID        int64
	Email     string
	Code      string
	Purpose   string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}
