// Package models holds the persisted entities of the banking core. Structs
// carry id-based foreign keys only; there is no object graph between them.
package models

import "time"

// Client is an account holder. PINHash is empty until the client configures
// a 4-digit transaction PIN; Active flips to true once the registration
// verification code is confirmed.
type Client struct {
	ID           int64
	Name         string
	CPF          string
	Email        string
	PasswordHash string
	PINHash      string
	Active       bool
	CreatedAt    time.Time
}
