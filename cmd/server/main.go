package main

import (
	"context"

	"github.com/alecthomas/kong"

	"moncomptepro/cmd/server/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Config  string           `help:"Path to a YAML configuration file." type:"path" env:"MCP_CONFIG"`
		Debug   bool             `help:"Enable debug logging."`
		Version kong.VersionFlag `help:"Print the version and exit."`

		Serve      commands.ServeCmd      `cmd:"" default:"1" help:"Serve the organization join API."`
		ForceJoin  commands.ForceJoinCmd  `cmd:"" help:"Link a user to an organization on a moderator's behalf."`
		AddDomain  commands.AddDomainCmd  `cmd:"" help:"Add an email domain to an organization."`
		IssueToken commands.IssueTokenCmd `cmd:"" help:"Print a bearer token for a user id (development)."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("server"),
		kong.Description("MonComptePro organization join service."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{ConfigPath: cli.Config, Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
