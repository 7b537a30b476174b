package models

import "time"

// User represents a registered account
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
