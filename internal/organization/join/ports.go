package join

import (
	"context"
	"time"

	moderationmodels "moncomptepro/internal/moderation/models"
	"moncomptepro/internal/organization/models"
	usermodels "moncomptepro/internal/user/models"
	audit "moncomptepro/pkg/platform/audit"
)

// RegistryGateway returns a fresh registry snapshot. Failures are either
// registry.ErrInvalidIdentifier or registry.ErrUpstreamUnavailable.
type RegistryGateway interface {
	FetchOrganizationInfo(ctx context.Context, siret string) (*models.OrganizationInfo, error)
}

type MunicipalDirectory interface {
	ContactEmail(ctx context.Context, geoCode, postalCode string) (string, error)
}

type SchoolDirectory interface {
	ContactEmail(ctx context.Context, siret string) (string, error)
}

type OrganizationStore interface {
	Upsert(ctx context.Context, info models.OrganizationInfo) (*models.Organization, error)
	FindByID(ctx context.Context, id int64) (*models.Organization, error)
	FindByUserID(ctx context.Context, userID int64) ([]*models.Organization, error)
	FindByVerifiedEmailDomain(ctx context.Context, domain string) ([]*models.Organization, error)
	FindByMostUsedEmailDomain(ctx context.Context, domain string) ([]*models.Organization, error)
	MarkDomainVerified(ctx context.Context, organizationID int64, domain string, verificationType models.VerificationType) error
	AddAuthorizedDomain(ctx context.Context, organizationID int64, domain string) error
	AddExternalAuthorizedDomain(ctx context.Context, organizationID int64, domain string) error
	LinkUser(ctx context.Context, link models.UserOrganizationLink) (*models.UserOrganizationLink, error)
	FindLink(ctx context.Context, userID, organizationID int64) (*models.UserOrganizationLink, error)
}

type UserStore interface {
	FindByID(ctx context.Context, id int64) (*usermodels.User, error)
}

type ModerationStore interface {
	Create(ctx context.Context, moderation moderationmodels.Moderation) (*moderationmodels.Moderation, error)
	// CreateIfAbsent returns the pending case of the same kind when one
	// exists instead of failing.
	CreateIfAbsent(ctx context.Context, moderation moderationmodels.Moderation) (*moderationmodels.Moderation, error)
	FindPending(ctx context.Context, userID, organizationID int64, kind moderationmodels.Type) (*moderationmodels.Moderation, error)
	MarkModerated(ctx context.Context, id int64, by string, at time.Time) error
}

// Notifier tells the user their request was queued and returns the ticket
// reference stored on the moderation case.
type Notifier interface {
	SendUnableToAutoJoin(ctx context.Context, to, label string) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Transactor groups the writes of one decision.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
