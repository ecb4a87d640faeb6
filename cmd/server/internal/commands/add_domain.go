package commands

import (
	"context"
	"encoding/json"
	"os"

	"moncomptepro/internal/organization/join"
	"moncomptepro/pkg/requestcontext"
)

type AddDomainCmd struct {
	OrganizationID int64  `help:"Organization id." required:""`
	Domain         string `help:"Email domain, lowercase." required:""`
	Kind           string `help:"Domain set to add to." enum:"authorized,external,verified" default:"authorized"`
	Moderator      string `help:"Moderator recorded on the audit trail." default:"cli" env:"MCP_MODERATOR"`
}

func (c *AddDomainCmd) Run(ctx context.Context, globals *Globals) error {
	kind, err := join.ParseDomainKind(c.Kind)
	if err != nil {
		return err
	}
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx = requestcontext.WithActor(ctx, c.Moderator)
	org, err := a.join.AddOrganizationDomain(ctx, c.OrganizationID, c.Domain, kind)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"organization_id":                   org.ID,
		"siret":                             org.Siret,
		"authorized_email_domains":          org.AuthorizedEmailDomains,
		"verified_email_domains":            org.VerifiedEmailDomains,
		"external_authorized_email_domains": org.ExternalAuthorizedEmailDomains,
	})
}
