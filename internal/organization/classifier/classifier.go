// Package classifier holds the pure predicates the join decision relies on:
// free email provider detection and organization type heuristics. Every
// predicate reads immutable Tables injected at construction.
package classifier

import (
	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/email"
)

// Classifier is safe for concurrent use.
type Classifier struct {
	tables compiled
}

// New compiles tables into a Classifier.
func New(tables Tables) (*Classifier, error) {
	c, err := compile(tables)
	if err != nil {
		return nil, err
	}
	return &Classifier{tables: c}, nil
}

// EmailDomain returns the lower-cased domain of address.
func (c *Classifier) EmailDomain(address string) string {
	return email.Domain(address)
}

func (c *Classifier) IsFreeEmailProviderDomain(domain string) bool {
	_, ok := c.tables.freeProviders[email.Domain("@"+domain)]
	return ok
}

func (c *Classifier) UsesFreeEmailProvider(address string) bool {
	return c.IsFreeEmailProviderDomain(email.Domain(address))
}

// IsSoleProprietorship: individual entrepreneur with no or one employee.
func (c *Classifier) IsSoleProprietorship(info models.OrganizationInfo) bool {
	return c.tables.soleLegalCategories.matches(info.CategorieJuridique) &&
		c.tables.soleEmployeeBrackets.matches(info.TrancheEffectifs)
}

func (c *Classifier) IsMunicipality(info models.OrganizationInfo) bool {
	return c.tables.municipalityLegal.matches(info.CategorieJuridique)
}

func (c *Classifier) IsPrimaryOrSecondarySchool(info models.OrganizationInfo) bool {
	return c.tables.schoolActivities.matches(info.ActivitePrincipale)
}

func (c *Classifier) HasFewerThanFiftyEmployees(info models.OrganizationInfo) bool {
	return c.tables.underFiftyBrackets.matches(info.TrancheEffectifs)
}

// IsEducationDomain matches académie domains, which are shared by every
// school of a region and so never identify a single organization.
func (c *Classifier) IsEducationDomain(domain string) bool {
	if c.tables.educationDomain == nil {
		return false
	}
	return c.tables.educationDomain.MatchString(email.Domain("@" + domain))
}
