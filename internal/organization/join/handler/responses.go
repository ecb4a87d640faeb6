package handler

import (
	"time"

	"moncomptepro/internal/organization/join"
	"moncomptepro/internal/organization/models"
	dErrors "moncomptepro/pkg/domain-errors"
)

// Next onboarding steps returned with a created membership.
const (
	NextWelcome                          = "welcome"
	NextOfficialContactEmailVerification = "official_contact_email_verification"
)

type LinkResponse struct {
	OrganizationID                        int64     `json:"organization_id"`
	UserID                                int64     `json:"user_id"`
	IsExternal                            bool      `json:"is_external"`
	VerificationType                      *string   `json:"verification_type"`
	NeedsOfficialContactEmailVerification bool      `json:"needs_official_contact_email_verification"`
	CreatedAt                             time.Time `json:"created_at"`
	Next                                  string    `json:"next,omitempty"`
}

// BlockedResponse is returned with 202 when the request was queued for
// moderation.
type BlockedResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	OrganizationID   int64  `json:"organization_id"`
	ModerationID     int64  `json:"moderation_id"`
}

type OrganizationResponse struct {
	ID                        int64  `json:"id"`
	Siret                     string `json:"siret"`
	Libelle                   string `json:"libelle"`
	LibelleCategorieJuridique string `json:"libelle_categorie_juridique,omitempty"`
	LibelleActivitePrincipale string `json:"libelle_activite_principale,omitempty"`
}

type OrganizationDomainsResponse struct {
	OrganizationID                 int64    `json:"organization_id"`
	AuthorizedEmailDomains         []string `json:"authorized_email_domains"`
	VerifiedEmailDomains           []string `json:"verified_email_domains"`
	ExternalAuthorizedEmailDomains []string `json:"external_authorized_email_domains"`
}

type SuggestionsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

func FromLink(link *models.UserOrganizationLink, withNext bool) LinkResponse {
	resp := LinkResponse{
		OrganizationID:                        link.OrganizationID,
		UserID:                                link.UserID,
		IsExternal:                            link.IsExternal,
		NeedsOfficialContactEmailVerification: link.NeedsOfficialContactEmailVerification,
		CreatedAt:                             link.CreatedAt,
	}
	if link.VerificationType != models.VerificationNone {
		vt := string(link.VerificationType)
		resp.VerificationType = &vt
	}
	if withNext {
		resp.Next = NextWelcome
		if link.NeedsOfficialContactEmailVerification {
			resp.Next = NextOfficialContactEmailVerification
		}
	}
	return resp
}

func FromBlocked(outcome *join.Outcome) BlockedResponse {
	resp := BlockedResponse{
		Error:            string(dErrors.CodeUnableToAutoJoin),
		ErrorDescription: "request queued for moderation",
		OrganizationID:   outcome.Organization.ID,
	}
	if outcome.Moderation != nil {
		resp.ModerationID = outcome.Moderation.ID
	}
	return resp
}

func FromOrganizations(orgs []*models.Organization) SuggestionsResponse {
	resp := SuggestionsResponse{Organizations: make([]OrganizationResponse, 0, len(orgs))}
	for _, org := range orgs {
		resp.Organizations = append(resp.Organizations, OrganizationResponse{
			ID:                        org.ID,
			Siret:                     org.Siret,
			Libelle:                   org.Label(),
			LibelleCategorieJuridique: org.Info.LibelleCategorieJuridique,
			LibelleActivitePrincipale: org.Info.LibelleActivitePrincipale,
		})
	}
	return resp
}

func FromOrganizationDomains(org *models.Organization) OrganizationDomainsResponse {
	return OrganizationDomainsResponse{
		OrganizationID:                 org.ID,
		AuthorizedEmailDomains:         nonNil(org.AuthorizedEmailDomains),
		VerifiedEmailDomains:           nonNil(org.VerifiedEmailDomains),
		ExternalAuthorizedEmailDomains: nonNil(org.ExternalAuthorizedEmailDomains),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
