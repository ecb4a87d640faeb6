package join

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.opentelemetry.io/otel/attribute"

	"moncomptepro/internal/organization/models"
	dErrors "moncomptepro/pkg/domain-errors"
	audit "moncomptepro/pkg/platform/audit"
	"moncomptepro/pkg/platform/sentinel"
	"moncomptepro/pkg/requestcontext"
)

// DomainKind names one of an organization's email domain sets.
type DomainKind string

const (
	DomainAuthorized DomainKind = "authorized"
	DomainExternal   DomainKind = "external"
	DomainVerified   DomainKind = "verified"
)

func ParseDomainKind(s string) (DomainKind, error) {
	switch k := DomainKind(s); k {
	case DomainAuthorized, DomainExternal, DomainVerified:
		return k, nil
	default:
		return "", fmt.Errorf("unknown domain kind %q", s)
	}
}

// AddOrganizationDomain lets a moderator add domain to one of the
// organization's sets. Verifying a domain also upgrades existing unverified
// members on it. Adding a domain already present is a no-op.
func (s *Service) AddOrganizationDomain(ctx context.Context, organizationID int64, domain string, kind DomainKind) (*models.Organization, error) {
	ctx, span := s.startSpan(ctx, "JoinService.AddOrganizationDomain")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("organization_id", organizationID),
		attribute.String("domain_kind", string(kind)),
	)

	org, err := s.addOrganizationDomain(ctx, organizationID, domain, kind)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	event := audit.Event{
		Action:         audit.EventOrganizationDomainAdded,
		OrganizationID: org.ID,
		Siret:          org.Siret,
		Domain:         domain,
		Reason:         string(kind),
	}
	if kind == DomainVerified {
		event.Action = audit.EventOrganizationDomainVerified
		event.VerificationType = string(models.VerificationVerifiedEmailDomain)
	}
	s.emitAudit(ctx, event)

	s.logger.InfoContext(ctx, "organization domain added",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"organization_id", org.ID,
		"domain", domain,
		"kind", kind,
	)
	return org, nil
}

func (s *Service) addOrganizationDomain(ctx context.Context, organizationID int64, domain string, kind DomainKind) (*models.Organization, error) {
	if _, err := ParseDomainKind(string(kind)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "unknown domain kind")
	}
	if strings.ToLower(domain) != domain || validation.Validate(domain, validation.Required, is.Domain) != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "domain must be a lowercase host name")
	}
	if s.classifier.IsFreeEmailProviderDomain(domain) {
		return nil, dErrors.New(dErrors.CodeValidation, "free email provider domains cannot be added")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		switch kind {
		case DomainAuthorized:
			return s.orgs.AddAuthorizedDomain(ctx, organizationID, domain)
		case DomainExternal:
			return s.orgs.AddExternalAuthorizedDomain(ctx, organizationID, domain)
		default:
			return s.orgs.MarkDomainVerified(ctx, organizationID, domain, models.VerificationVerifiedEmailDomain)
		}
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add organization domain")
	}

	org, err := s.orgs.FindByID(ctx, organizationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}
	return org, nil
}
