package models

import "time"

// Type of a review case.
type Type string

const (
	// TypeOrganizationJoinBlock: the join was refused until a moderator acts.
	TypeOrganizationJoinBlock Type = "organization_join_block"
	// TypeNonVerifiedDomain: the user was linked through an authorized but
	// unverified domain. Informational.
	TypeNonVerifiedDomain Type = "non_verified_domain"
)

// Moderation is a human review case. It is pending while ModeratedAt is nil.
type Moderation struct {
	ID             int64
	UserID         int64
	OrganizationID int64
	Type           Type
	TicketID       *string
	CreatedAt      time.Time
	ModeratedAt    *time.Time
	ModeratedBy    *string
}

func (m *Moderation) IsPending() bool {
	return m.ModeratedAt == nil
}
