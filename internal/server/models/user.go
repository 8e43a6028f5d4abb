// Package models defines server-side records persisted in PostgreSQL.
package models

import "time"

// User is a registered account. Email is the unique login key.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
