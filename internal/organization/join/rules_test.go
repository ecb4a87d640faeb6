package join

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"moncomptepro/internal/evidence/directory"
	"moncomptepro/internal/organization/models"
)

func found(email, domain string, free bool) Contact {
	return Contact{
		Result:     directory.Result{Status: directory.StatusFound, Email: email},
		Domain:     domain,
		DomainFree: free,
	}
}

func freeUser(f Facts) Facts {
	f.UserEmail = "jean@gmail.com"
	f.UserDomain = "gmail.com"
	f.UserDomainFree = true
	return f
}

func acmeUser(f Facts) Facts {
	f.UserEmail = "jean@acme.example"
	f.UserDomain = "acme.example"
	return f
}

var (
	sole         = Classification{SoleProprietorship: true}
	municipality = Classification{Municipality: true}
	smallTown    = Classification{Municipality: true, FewerThanFiftyEmployees: true}
	school       = Classification{PrimaryOrSecondarySchool: true}
)

func TestEvaluateJoin(t *testing.T) {
	tests := []struct {
		name  string
		facts Facts
		want  Plan
	}{
		{
			name:  "sole proprietorship on free mail links without authorizing",
			facts: freeUser(Facts{Classification: sole}),
			want:  Plan{Rule: RuleSoleProprietorship, Action: ActionLink},
		},
		{
			name:  "sole proprietorship authorizes a professional domain",
			facts: acmeUser(Facts{Classification: sole}),
			want:  Plan{Rule: RuleSoleProprietorship, Action: ActionLink, AuthorizeDomain: "acme.example"},
		},
		{
			name:  "sole proprietorship wins over municipality",
			facts: acmeUser(Facts{Classification: Classification{SoleProprietorship: true, Municipality: true}}),
			want:  Plan{Rule: RuleSoleProprietorship, Action: ActionLink, AuthorizeDomain: "acme.example"},
		},
		{
			name: "requester is the municipal contact",
			facts: acmeUser(Facts{
				Classification:   municipality,
				MunicipalContact: found("jean@acme.example", "acme.example", false),
			}),
			want: Plan{
				Rule:                RuleMunicipalityOfficialContact,
				Action:              ActionLink,
				VerificationType:    models.VerificationOfficialContactEmail,
				VerifyContactDomain: "acme.example",
			},
		},
		{
			name: "contact email matches ignoring case",
			facts: acmeUser(Facts{
				Classification:   municipality,
				MunicipalContact: found("Jean@ACME.example", "acme.example", false),
			}),
			want: Plan{
				Rule:                RuleMunicipalityOfficialContact,
				Action:              ActionLink,
				VerificationType:    models.VerificationOfficialContactEmail,
				VerifyContactDomain: "acme.example",
			},
		},
		{
			name: "requester shares the municipal contact domain",
			facts: acmeUser(Facts{
				Classification:   municipality,
				MunicipalContact: found("mairie@acme.example", "acme.example", false),
			}),
			want: Plan{
				Rule:                RuleMunicipalityOfficialContact,
				Action:              ActionLink,
				VerificationType:    models.VerificationOfficialContactDomain,
				VerifyContactDomain: "acme.example",
			},
		},
		{
			name: "free mail municipality and free mail requester",
			facts: freeUser(Facts{
				Classification:   municipality,
				MunicipalContact: found("mairie@orange.fr", "orange.fr", true),
			}),
			want: Plan{
				Rule:                                  RuleMunicipalityOfficialContact,
				Action:                                ActionLink,
				NeedsOfficialContactEmailVerification: true,
			},
		},
		{
			name: "small municipality and free mail requester",
			facts: freeUser(Facts{
				Classification:   smallTown,
				MunicipalContact: found("mairie@ville.example", "ville.example", false),
			}),
			want: Plan{
				Rule:                                  RuleMunicipalityOfficialContact,
				Action:                                ActionLink,
				NeedsOfficialContactEmailVerification: true,
				VerifyContactDomain:                   "ville.example",
			},
		},
		{
			name: "municipal contact domain is verified even when generic rules resolve",
			facts: acmeUser(Facts{
				Classification:    municipality,
				MunicipalContact:  found("mairie@ville.example", "ville.example", false),
				AuthorizedDomains: []string{"acme.example"},
			}),
			want: Plan{
				Rule:                  RuleAuthorizedDomain,
				Action:                ActionLink,
				FlagNonVerifiedDomain: true,
				VerifyContactDomain:   "ville.example",
			},
		},
		{
			name: "municipal contact wins over authorized domain",
			facts: acmeUser(Facts{
				Classification:    municipality,
				MunicipalContact:  found("mairie@acme.example", "acme.example", false),
				AuthorizedDomains: []string{"acme.example"},
			}),
			want: Plan{
				Rule:                RuleMunicipalityOfficialContact,
				Action:              ActionLink,
				VerificationType:    models.VerificationOfficialContactDomain,
				VerifyContactDomain: "acme.example",
			},
		},
		{
			name: "failed municipal lookup falls back to verified domain",
			facts: acmeUser(Facts{
				Classification:   municipality,
				MunicipalContact: Contact{Result: directory.Result{Status: directory.StatusFailed, Err: errors.New("timeout")}},
				VerifiedDomains:  []string{"acme.example"},
			}),
			want: Plan{Rule: RuleVerifiedDomain, Action: ActionLink, VerificationType: models.VerificationVerifiedEmailDomain},
		},
		{
			name: "municipal contact ignored for schools",
			facts: acmeUser(Facts{
				Classification:   Classification{Municipality: true, PrimaryOrSecondarySchool: true},
				MunicipalContact: found("jean@acme.example", "acme.example", false),
			}),
			want: Plan{Rule: RuleJoinBlock, Action: ActionBlock},
		},
		{
			name: "requester is the school contact",
			facts: acmeUser(Facts{
				Classification: school,
				SchoolContact:  found("jean@acme.example", "acme.example", false),
			}),
			want: Plan{Rule: RuleSchoolOfficialContact, Action: ActionLink, VerificationType: models.VerificationOfficialContactEmail},
		},
		{
			name: "school with another contact links pending verification",
			facts: freeUser(Facts{
				Classification: school,
				SchoolContact:  found("ce.0690001a@ac-lyon.fr", "ac-lyon.fr", false),
			}),
			want: Plan{Rule: RuleSchoolOfficialContact, Action: ActionLink, NeedsOfficialContactEmailVerification: true},
		},
		{
			name: "school without contact falls through",
			facts: acmeUser(Facts{
				Classification:            school,
				SchoolContact:             Contact{Result: directory.Result{Status: directory.StatusEmpty}},
				ExternalAuthorizedDomains: []string{"acme.example"},
			}),
			want: Plan{
				Rule:             RuleExternalAuthorizedDomain,
				Action:           ActionLink,
				IsExternal:       true,
				VerificationType: models.VerificationVerifiedEmailDomain,
			},
		},
		{
			name: "verified domain wins over external and authorized",
			facts: acmeUser(Facts{
				VerifiedDomains:           []string{"acme.example"},
				ExternalAuthorizedDomains: []string{"acme.example"},
				AuthorizedDomains:         []string{"acme.example"},
			}),
			want: Plan{Rule: RuleVerifiedDomain, Action: ActionLink, VerificationType: models.VerificationVerifiedEmailDomain},
		},
		{
			name:  "authorized domain flags for moderation",
			facts: acmeUser(Facts{AuthorizedDomains: []string{"acme.example"}}),
			want:  Plan{Rule: RuleAuthorizedDomain, Action: ActionLink, FlagNonVerifiedDomain: true},
		},
		{
			name:  "unknown domain blocks",
			facts: acmeUser(Facts{AuthorizedDomains: []string{"other.example"}}),
			want:  Plan{Rule: RuleJoinBlock, Action: ActionBlock},
		},
		{
			name: "municipal contact domain is verified before blocking",
			facts: acmeUser(Facts{
				Classification:   municipality,
				MunicipalContact: found("mairie@ville.example", "ville.example", false),
			}),
			want: Plan{Rule: RuleJoinBlock, Action: ActionBlock, VerifyContactDomain: "ville.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateJoin(tt.facts))
		})
	}
}

func TestDirectoryLookupNeeds(t *testing.T) {
	assert.True(t, NeedsMunicipalLookup(municipality))
	assert.False(t, NeedsMunicipalLookup(Classification{Municipality: true, SoleProprietorship: true}))
	assert.False(t, NeedsMunicipalLookup(Classification{Municipality: true, PrimaryOrSecondarySchool: true}))
	assert.True(t, NeedsSchoolLookup(Classification{Municipality: true, PrimaryOrSecondarySchool: true}))
	assert.False(t, NeedsSchoolLookup(sole))
	assert.False(t, NeedsMunicipalLookup(Classification{}))
	assert.False(t, NeedsSchoolLookup(Classification{}))
}
