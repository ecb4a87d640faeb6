package models

import "time"

// VerificationType records how trust in a membership was established.
// The zero value means no verification.
type VerificationType string

const (
	VerificationNone                  VerificationType = ""
	VerificationVerifiedEmailDomain   VerificationType = "verified_email_domain"
	VerificationOfficialContactEmail  VerificationType = "official_contact_email"
	VerificationOfficialContactDomain VerificationType = "official_contact_domain"
)

// ParseVerificationType validates a stored or user supplied value.
func ParseVerificationType(s string) (VerificationType, bool) {
	switch v := VerificationType(s); v {
	case VerificationNone, VerificationVerifiedEmailDomain, VerificationOfficialContactEmail, VerificationOfficialContactDomain:
		return v, true
	}
	return VerificationNone, false
}

// OrganizationInfo is an immutable registry snapshot for one SIRET.
type OrganizationInfo struct {
	Siret                     string
	Libelle                   string
	EstActive                 bool
	CategorieJuridique        string
	LibelleCategorieJuridique string
	ActivitePrincipale        string
	LibelleActivitePrincipale string
	CodeOfficielGeographique  string
	CodePostal                string
	TrancheEffectifs          string
	FetchedAt                 time.Time
}

// Organization is the persisted organization with its cached registry
// snapshot and email domain trust sets.
type Organization struct {
	ID                             int64
	Siret                          string
	Info                           OrganizationInfo
	AuthorizedEmailDomains         []string
	VerifiedEmailDomains           []string
	ExternalAuthorizedEmailDomains []string
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// Label is the display name, or the SIRET when the registry has none.
func (o *Organization) Label() string {
	if o.Info.Libelle != "" {
		return o.Info.Libelle
	}
	return o.Siret
}

// UserOrganizationLink is a membership edge. At most one exists per
// (UserID, OrganizationID).
type UserOrganizationLink struct {
	UserID                                int64
	OrganizationID                        int64
	IsExternal                            bool
	VerificationType                      VerificationType
	NeedsOfficialContactEmailVerification bool
	CreatedAt                             time.Time
}
