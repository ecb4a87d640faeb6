package join

import (
	"context"
	"slices"

	"moncomptepro/internal/evidence/directory"
	"moncomptepro/internal/organization/models"
	usermodels "moncomptepro/internal/user/models"
	"moncomptepro/pkg/requestcontext"
)

const (
	directoryMunicipal = "municipal"
	directorySchool    = "school"
)

// gatherFacts classifies the organization and runs the directory lookup its
// type calls for. Lookup failures end up as an empty contact.
func (s *Service) gatherFacts(ctx context.Context, org *models.Organization, user *usermodels.User) Facts {
	userDomain := s.classifier.EmailDomain(user.Email)
	f := Facts{
		Classification: Classification{
			SoleProprietorship:       s.classifier.IsSoleProprietorship(org.Info),
			Municipality:             s.classifier.IsMunicipality(org.Info),
			PrimaryOrSecondarySchool: s.classifier.IsPrimaryOrSecondarySchool(org.Info),
			FewerThanFiftyEmployees:  s.classifier.HasFewerThanFiftyEmployees(org.Info),
		},
		UserEmail:                 user.Email,
		UserDomain:                userDomain,
		UserDomainFree:            s.classifier.IsFreeEmailProviderDomain(userDomain),
		VerifiedDomains:           org.VerifiedEmailDomains,
		AuthorizedDomains:         org.AuthorizedEmailDomains,
		ExternalAuthorizedDomains: org.ExternalAuthorizedEmailDomains,
	}

	if NeedsMunicipalLookup(f.Classification) && s.municipal != nil {
		f.MunicipalContact = s.lookupContact(ctx, directoryMunicipal, org, func(ctx context.Context) (string, error) {
			return s.municipal.ContactEmail(ctx, org.Info.CodeOfficielGeographique, org.Info.CodePostal)
		})
	}
	if NeedsSchoolLookup(f.Classification) && s.school != nil {
		f.SchoolContact = s.lookupContact(ctx, directorySchool, org, func(ctx context.Context) (string, error) {
			return s.school.ContactEmail(ctx, org.Siret)
		})
	}
	return f
}

func (s *Service) lookupContact(ctx context.Context, name string, org *models.Organization, fn func(context.Context) (string, error)) Contact {
	ctx, span := s.startSpan(ctx, "JoinService.lookupContact."+name)
	defer span.End()

	if s.directoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.directoryTimeout)
		defer cancel()
	}

	result := directory.Lookup(ctx, fn)
	s.metrics.IncrementDirectoryLookup(name, string(result.Status))
	if result.Status == directory.StatusFailed {
		span.RecordError(result.Err)
		s.logger.ErrorContext(ctx, "directory lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"directory", name,
			"organization_id", org.ID,
			"siret", org.Siret,
			"error", result.Err,
		)
	}

	c := Contact{Result: result}
	if result.Found() {
		c.Domain = s.classifier.EmailDomain(result.Email)
		c.DomainFree = s.classifier.IsFreeEmailProviderDomain(c.Domain)
	}
	return c
}

func containsDomain(domains []string, domain string) bool {
	return domain != "" && slices.Contains(domains, domain)
}
