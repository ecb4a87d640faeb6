package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"moncomptepro/internal/organization/join"
	"moncomptepro/internal/organization/models"
	dErrors "moncomptepro/pkg/domain-errors"
	"moncomptepro/pkg/platform/httputil"
	"moncomptepro/pkg/platform/middleware/metadata"
	"moncomptepro/pkg/requestcontext"
)

// Service defines the join operations exposed over HTTP.
type Service interface {
	Join(ctx context.Context, siret string, userID int64) (*join.Outcome, error)
	ForceJoinOrganization(ctx context.Context, organizationID, userID int64, isExternal bool) (*models.UserOrganizationLink, error)
	SuggestOrganizations(ctx context.Context, userID int64) ([]*models.Organization, error)
	AddOrganizationDomain(ctx context.Context, organizationID int64, domain string, kind join.DomainKind) (*models.Organization, error)
}

// Handler wires organization join endpoints to the join service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the user endpoints. The router must authenticate the user.
func (h *Handler) Register(r chi.Router) {
	r.Post("/organizations/join", h.HandleJoin)
	r.Get("/organizations/suggestions", h.HandleSuggestions)
}

// RegisterAdmin mounts the moderator endpoints.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/organizations/{organization_id}/members", h.HandleForceJoin)
	r.Post("/admin/organizations/{organization_id}/domains", h.HandleAddDomain)
}

// HandleJoin handles POST /organizations/join.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[JoinRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.Join(ctx, req.Siret, userID)
	if err != nil {
		h.logger.InfoContext(ctx, "organization join refused",
			"request_id", requestID,
			"user_id", userID,
			"siret", req.Siret,
			"code", dErrors.CodeOf(err),
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization join handled",
		"request_id", requestID,
		"user_id", userID,
		"siret", req.Siret,
		"outcome", outcome.Kind,
		"client_ip", metadata.GetClientIP(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if outcome.Kind == join.OutcomeBlocked {
		httputil.WriteJSON(w, http.StatusAccepted, FromBlocked(outcome))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromLink(outcome.Link, true))
}

// HandleSuggestions handles GET /organizations/suggestions.
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	orgs, err := h.service.SuggestOrganizations(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "organization suggestions failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrganizations(orgs))
}

// HandleForceJoin handles POST /admin/organizations/{organization_id}/members.
func (h *Handler) HandleForceJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	organizationID, ok := organizationIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[ForceJoinRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	link, err := h.service.ForceJoinOrganization(ctx, organizationID, req.UserID, req.IsExternal)
	if err != nil {
		h.logger.WarnContext(ctx, "forced organization join failed",
			"request_id", requestID,
			"actor", requestcontext.Actor(ctx),
			"organization_id", organizationID,
			"user_id", req.UserID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromLink(link, false))
}

// HandleAddDomain handles POST /admin/organizations/{organization_id}/domains.
func (h *Handler) HandleAddDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	organizationID, ok := organizationIDParam(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddDomainRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	org, err := h.service.AddOrganizationDomain(ctx, organizationID, req.Domain, join.DomainKind(req.Kind))
	if err != nil {
		h.logger.WarnContext(ctx, "adding organization domain failed",
			"request_id", requestID,
			"actor", requestcontext.Actor(ctx),
			"organization_id", organizationID,
			"domain", req.Domain,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrganizationDomains(org))
}

func organizationIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "organization_id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid organization_id"))
		return 0, false
	}
	return id, true
}
