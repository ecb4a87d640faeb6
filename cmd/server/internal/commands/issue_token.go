package commands

import (
	"context"
	"fmt"
	"time"

	jwttoken "moncomptepro/internal/jwt_token"
)

type IssueTokenCmd struct {
	UserID int64         `help:"User id carried by the token." required:""`
	TTL    time.Duration `help:"Token lifetime." default:"1h"`
}

func (c *IssueTokenCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, _, err := globals.load()
	if err != nil {
		return err
	}
	token, err := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience).
		GenerateAccessToken(c.UserID, c.TTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
