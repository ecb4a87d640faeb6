package audit

import "time"

// EventCategory classifies audit events by retention needs.
type EventCategory string

const (
	// CategoryCompliance: membership changes. Long retention.
	CategoryCompliance EventCategory = "compliance"
	// CategoryOperations: routine outcomes useful for support and debugging.
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	EventOrganizationJoined        AuditEvent = "organization_joined"
	EventOrganizationJoinBlocked   AuditEvent = "organization_join_blocked"
	EventOrganizationJoinRejected  AuditEvent = "organization_join_rejected"
	EventOrganizationForceJoined   AuditEvent = "organization_force_joined"
	EventOrganizationDomainAdded   AuditEvent = "organization_domain_added"
	EventOrganizationDomainVerified AuditEvent = "organization_domain_verified"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventOrganizationJoined:        CategoryCompliance,
	EventOrganizationForceJoined:   CategoryCompliance,
	EventOrganizationDomainAdded:   CategoryCompliance,
	EventOrganizationDomainVerified: CategoryCompliance,
	EventOrganizationJoinBlocked:   CategoryOperations,
	EventOrganizationJoinRejected:  CategoryOperations,
}

// Category returns the category of e. Unknown events are operations events.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Event records one organization membership decision or domain change.
// It is transport agnostic; stores serialize it as JSON.
type Event struct {
	ID               string        `json:"id"`
	Category         EventCategory `json:"category"`
	Action           AuditEvent    `json:"action"`
	Timestamp        time.Time     `json:"timestamp"`
	UserID           int64         `json:"user_id,omitempty"`
	OrganizationID   int64         `json:"organization_id,omitempty"`
	Siret            string        `json:"siret,omitempty"`
	Rule             string        `json:"rule,omitempty"`
	Decision         string        `json:"decision,omitempty"`
	VerificationType string        `json:"verification_type,omitempty"`
	Domain           string        `json:"domain,omitempty"`
	Reason           string        `json:"reason,omitempty"`
	RequestID        string        `json:"request_id,omitempty"`
	// ActorID is set when a moderator acts on the user's behalf.
	ActorID string `json:"actor_id,omitempty"`
}
