package commands

import (
	"context"
	"encoding/json"
	"os"

	"moncomptepro/internal/organization/join/handler"
	"moncomptepro/pkg/requestcontext"
)

type ForceJoinCmd struct {
	OrganizationID int64  `help:"Organization id." required:""`
	UserID         int64  `help:"User id." required:""`
	External       bool   `help:"Link the user as an external member."`
	Moderator      string `help:"Moderator recorded on the audit trail." default:"cli" env:"MCP_MODERATOR"`
}

func (c *ForceJoinCmd) Run(ctx context.Context, globals *Globals) error {
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
	link, err := a.join.ForceJoinOrganization(ctx, c.OrganizationID, c.UserID, c.External)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(handler.FromLink(link, false))
}
