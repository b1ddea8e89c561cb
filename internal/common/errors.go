// Package common defines shared constants and sentinel errors used across
// the banking core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrConflict   = errors.New("already exists")

	// Validation errors raised before any mutation.
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMinimumNotMet = errors.New("amount below investment minimum")

	// Ledger errors. No committed state may violate the non-negative
	// balance invariant, so InsufficientFunds is checked under the row lock.
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("transfer to own account")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrAlreadyRedeemed   = errors.New("investment already redeemed")

	// Auth errors (bad password, bad transaction PIN, malformed token).
	ErrAuthentication = errors.New("authentication failed")
	ErrInvalidToken   = errors.New("invalid token")

	// Verification-code errors. Wrong, replayed and expired codes are
	// deliberately indistinguishable to the caller.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
)
