package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds the encoded salt:iterations:digest:hash string produced
// by pkg/password; it must never be serialized out to clients.
type User struct {
	ID           string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
