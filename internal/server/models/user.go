// Package models defines the server-side data structures persisted in Postgres.
package models

import "time"

// User is an identity record. PasswordHash holds a bcrypt hash; the plaintext
// password never survives registration. UserName is an optional display name
// and stays empty until the user sets one.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	UserName     string
	CreatedAt    time.Time
}
