package handler

import (
	"strings"

	"moncomptepro/internal/evidence/registry"
	"moncomptepro/internal/organization/join"
	dErrors "moncomptepro/pkg/domain-errors"
)

// JoinRequest is the HTTP request body for POST /organizations/join.
type JoinRequest struct {
	Siret string `json:"siret"`
}

// Validate normalises the SIRET (users paste it with spaces) and checks its
// syntax before the registry is consulted.
func (r *JoinRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Siret) > 64 {
		return dErrors.New(dErrors.CodeInvalidSiret, "siret must be 14 digits")
	}
	r.Siret = strings.Join(strings.Fields(r.Siret), "")
	if err := registry.ValidateSiret(r.Siret); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidSiret, "siret must be 14 digits")
	}
	return nil
}

// ForceJoinRequest is the HTTP request body for
// POST /admin/organizations/{organization_id}/members.
type ForceJoinRequest struct {
	UserID     int64 `json:"user_id"`
	IsExternal bool  `json:"is_external"`
}

func (r *ForceJoinRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.UserID <= 0 {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	return nil
}

// AddDomainRequest is the HTTP request body for
// POST /admin/organizations/{organization_id}/domains.
type AddDomainRequest struct {
	Domain string `json:"domain"`
	Kind   string `json:"kind"`
}

func (r *AddDomainRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Domain = strings.ToLower(strings.TrimSpace(r.Domain))
	if r.Domain == "" {
		return dErrors.New(dErrors.CodeValidation, "domain is required")
	}
	if r.Kind == "" {
		r.Kind = string(join.DomainAuthorized)
	}
	if _, err := join.ParseDomainKind(r.Kind); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "kind must be authorized, external or verified")
	}
	return nil
}
