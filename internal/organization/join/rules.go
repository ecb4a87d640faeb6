package join

import (
	"moncomptepro/internal/evidence/directory"
	"moncomptepro/internal/organization/models"
	"moncomptepro/pkg/email"
)

// Rule names the branch that resolved a join request.
type Rule string

const (
	RuleSoleProprietorship          Rule = "sole_proprietorship"
	RuleMunicipalityOfficialContact Rule = "municipality_official_contact"
	RuleSchoolOfficialContact       Rule = "school_official_contact"
	RuleVerifiedDomain              Rule = "verified_domain"
	RuleExternalAuthorizedDomain    Rule = "external_authorized_domain"
	RuleAuthorizedDomain            Rule = "authorized_domain"
	RuleJoinBlock                   Rule = "join_block"
)

type Action string

const (
	ActionLink  Action = "link"
	ActionBlock Action = "block"
)

// Classification is the organization type as seen by the classifier.
type Classification struct {
	SoleProprietorship       bool
	Municipality             bool
	PrimaryOrSecondarySchool bool
	FewerThanFiftyEmployees  bool
}

// Contact is a directory lookup result with its domain pre-classified.
type Contact struct {
	Result     directory.Result
	Domain     string
	DomainFree bool
}

// Facts is everything a join decision reads. Contact results are only set
// when the classification asked for a directory lookup.
type Facts struct {
	Classification Classification

	UserEmail      string
	UserDomain     string
	UserDomainFree bool

	VerifiedDomains           []string
	AuthorizedDomains         []string
	ExternalAuthorizedDomains []string

	MunicipalContact Contact
	SchoolContact    Contact
}

// Plan is the outcome of EvaluateJoin: what to write, in order.
type Plan struct {
	Rule   Rule
	Action Action

	VerificationType                      models.VerificationType
	IsExternal                            bool
	NeedsOfficialContactEmailVerification bool

	// AuthorizeDomain is added to the authorized set before linking.
	AuthorizeDomain string
	// VerifyContactDomain is marked verified with official_contact_domain,
	// even when a later rule resolves the request.
	VerifyContactDomain string
	// FlagNonVerifiedDomain records an informational moderation case.
	FlagNonVerifiedDomain bool
}

type rule struct {
	name  Rule
	apply func(Facts) (Plan, bool)
}

// joinRules in precedence order. The first match wins; join_block always
// matches.
var joinRules = []rule{
	{RuleSoleProprietorship, soleProprietorship},
	{RuleMunicipalityOfficialContact, municipalityOfficialContact},
	{RuleSchoolOfficialContact, schoolOfficialContact},
	{RuleVerifiedDomain, verifiedDomain},
	{RuleExternalAuthorizedDomain, externalAuthorizedDomain},
	{RuleAuthorizedDomain, authorizedDomain},
	{RuleJoinBlock, joinBlock},
}

// EvaluateJoin applies the join rules to facts.
// This is pure domain logic - no I/O, no side effects.
func EvaluateJoin(f Facts) Plan {
	var verifyContactDomain string
	for _, r := range joinRules {
		p, ok := r.apply(f)
		if p.VerifyContactDomain != "" {
			verifyContactDomain = p.VerifyContactDomain
		}
		if ok {
			p.Rule = r.name
			p.VerifyContactDomain = verifyContactDomain
			return p
		}
	}
	// unreachable: joinBlock matches everything
	return Plan{Rule: RuleJoinBlock, Action: ActionBlock, VerifyContactDomain: verifyContactDomain}
}

// NeedsMunicipalLookup reports whether the municipal directory is consulted.
func NeedsMunicipalLookup(c Classification) bool {
	return !c.SoleProprietorship && c.Municipality && !c.PrimaryOrSecondarySchool
}

// NeedsSchoolLookup reports whether the education directory is consulted.
func NeedsSchoolLookup(c Classification) bool {
	return !c.SoleProprietorship && c.PrimaryOrSecondarySchool
}

func soleProprietorship(f Facts) (Plan, bool) {
	if !f.Classification.SoleProprietorship {
		return Plan{}, false
	}
	p := Plan{Action: ActionLink}
	if !f.UserDomainFree {
		p.AuthorizeDomain = f.UserDomain
	}
	return p, true
}

func municipalityOfficialContact(f Facts) (Plan, bool) {
	if !NeedsMunicipalLookup(f.Classification) || !f.MunicipalContact.Result.Found() {
		return Plan{}, false
	}
	contact := f.MunicipalContact

	var p Plan
	if !contact.DomainFree {
		p.VerifyContactDomain = contact.Domain
	}

	// Rule priority:
	//  1. the requester is the official contact
	//  2. the requester shares the contact's non-free domain
	//  3. small or free-mail municipality, requester on free mail too
	switch {
	case email.Equal(contact.Result.Email, f.UserEmail):
		p.Action = ActionLink
		p.VerificationType = models.VerificationOfficialContactEmail
		return p, true
	case !contact.DomainFree && contact.Domain == f.UserDomain:
		p.Action = ActionLink
		p.VerificationType = models.VerificationOfficialContactDomain
		return p, true
	case (contact.DomainFree || f.Classification.FewerThanFiftyEmployees) && f.UserDomainFree:
		p.Action = ActionLink
		p.NeedsOfficialContactEmailVerification = true
		return p, true
	}
	return p, false
}

func schoolOfficialContact(f Facts) (Plan, bool) {
	if !NeedsSchoolLookup(f.Classification) || !f.SchoolContact.Result.Found() {
		return Plan{}, false
	}
	if email.Equal(f.SchoolContact.Result.Email, f.UserEmail) {
		return Plan{Action: ActionLink, VerificationType: models.VerificationOfficialContactEmail}, true
	}
	return Plan{Action: ActionLink, NeedsOfficialContactEmailVerification: true}, true
}

func verifiedDomain(f Facts) (Plan, bool) {
	if !containsDomain(f.VerifiedDomains, f.UserDomain) {
		return Plan{}, false
	}
	return Plan{Action: ActionLink, VerificationType: models.VerificationVerifiedEmailDomain}, true
}

func externalAuthorizedDomain(f Facts) (Plan, bool) {
	if !containsDomain(f.ExternalAuthorizedDomains, f.UserDomain) {
		return Plan{}, false
	}
	return Plan{Action: ActionLink, IsExternal: true, VerificationType: models.VerificationVerifiedEmailDomain}, true
}

func authorizedDomain(f Facts) (Plan, bool) {
	if !containsDomain(f.AuthorizedDomains, f.UserDomain) {
		return Plan{}, false
	}
	return Plan{Action: ActionLink, FlagNonVerifiedDomain: true}, true
}

func joinBlock(Facts) (Plan, bool) {
	return Plan{Action: ActionBlock}, true
}
