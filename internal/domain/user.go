package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
