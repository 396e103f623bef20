package models

import "time"

// User is a registered principal: a unique username plus the stored
// bcrypt credential. The username is the natural key and is immutable
// after registration.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
