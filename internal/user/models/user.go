package models

import "time"

// User is the read model of an account as seen by organization membership.
type User struct {
	ID         int64
	Email      string
	GivenName  string
	FamilyName string
	CreatedAt  time.Time
}
