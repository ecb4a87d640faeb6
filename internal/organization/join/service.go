// Package join decides whether a user may join an organization identified by
// its SIRET. The decision itself is the pure EvaluateJoin; Service gathers the
// facts it needs and applies the resulting plan.
package join

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"moncomptepro/internal/evidence/registry"
	moderationmodels "moncomptepro/internal/moderation/models"
	"moncomptepro/internal/organization/classifier"
	"moncomptepro/internal/organization/join/metrics"
	"moncomptepro/internal/organization/models"
	usermodels "moncomptepro/internal/user/models"
	dErrors "moncomptepro/pkg/domain-errors"
	audit "moncomptepro/pkg/platform/audit"
	"moncomptepro/pkg/platform/sentinel"
	"moncomptepro/pkg/platform/tx"
	"moncomptepro/pkg/requestcontext"
)

type OutcomeKind string

const (
	OutcomeLinked  OutcomeKind = "linked"
	OutcomeBlocked OutcomeKind = "blocked"
)

// Outcome of a join attempt that was not rejected. Link is set when Linked.
// Moderation is the blocking case when Blocked, or the informational
// non_verified_domain case when the link came through an authorized domain.
type Outcome struct {
	Kind         OutcomeKind
	Rule         Rule
	Organization *models.Organization
	Link         *models.UserOrganizationLink
	Moderation   *moderationmodels.Moderation
}

type Service struct {
	registry    RegistryGateway
	orgs        OrganizationStore
	users       UserStore
	moderations ModerationStore
	notifier    Notifier
	classifier  *classifier.Classifier

	municipal        MunicipalDirectory
	school           SchoolDirectory
	directoryTimeout time.Duration
	tx               Transactor
	auditPublisher   AuditPublisher
	metrics          *metrics.Metrics
	logger           *slog.Logger
	tracer           trace.Tracer
}

type Option func(*Service)

func WithMunicipalDirectory(d MunicipalDirectory) Option {
	return func(s *Service) {
		s.municipal = d
	}
}

func WithSchoolDirectory(d SchoolDirectory) Option {
	return func(s *Service) {
		s.school = d
	}
}

// WithDirectoryTimeout bounds each directory lookup. Zero means the caller's
// deadline only.
func WithDirectoryTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.directoryTimeout = d
	}
}

func WithTransactor(t Transactor) Option {
	return func(s *Service) {
		s.tx = t
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(
	registryGateway RegistryGateway,
	orgs OrganizationStore,
	users UserStore,
	moderations ModerationStore,
	notifier Notifier,
	cls *classifier.Classifier,
	opts ...Option,
) (*Service, error) {
	if registryGateway == nil {
		return nil, fmt.Errorf("registry gateway is required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organization store is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if moderations == nil {
		return nil, fmt.Errorf("moderation store is required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if cls == nil {
		return nil, fmt.Errorf("classifier is required")
	}

	svc := &Service{
		registry:    registryGateway,
		orgs:        orgs,
		users:       users,
		moderations: moderations,
		notifier:    notifier,
		classifier:  cls,
		tx:          tx.NoopRunner{},
		logger:      slog.Default(),
		tracer:      otel.Tracer("moncomptepro/internal/organization/join"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// JoinOrganization links userID to the organization registered under siret,
// or fails with a coded error. A blocked request is reported as
// CodeUnableToAutoJoin after its moderation case has been recorded.
func (s *Service) JoinOrganization(ctx context.Context, siret string, userID int64) (*models.UserOrganizationLink, error) {
	outcome, err := s.Join(ctx, siret, userID)
	if err != nil {
		return nil, err
	}
	if outcome.Kind == OutcomeBlocked {
		return nil, dErrors.New(dErrors.CodeUnableToAutoJoin, "request queued for moderation")
	}
	return outcome.Link, nil
}

// Join runs one join decision. Rejections are returned as coded errors;
// Linked and Blocked are both successful outcomes.
func (s *Service) Join(ctx context.Context, siret string, userID int64) (*Outcome, error) {
	ctx, span := s.startSpan(ctx, "JoinService.Join")
	defer span.End()
	span.SetAttributes(attribute.String("siret", siret), attribute.Int64("user_id", userID))

	start := time.Now()
	outcome, err := s.join(ctx, siret, userID)
	s.metrics.ObserveDecisionLatency("join", time.Since(start))

	if err != nil {
		span.RecordError(err)
		code := dErrors.CodeOf(err)
		s.metrics.IncrementOutcome("", string(code))
		s.logger.InfoContext(ctx, "organization join rejected",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", userID,
			"siret", siret,
			"code", code,
			"error", err,
		)
		s.emitAudit(ctx, audit.Event{
			Action: audit.EventOrganizationJoinRejected,
			UserID: userID,
			Siret:  siret,
			Reason: string(code),
		})
		return nil, err
	}

	span.SetAttributes(attribute.String("rule", string(outcome.Rule)), attribute.String("outcome", string(outcome.Kind)))
	s.metrics.IncrementOutcome(string(outcome.Rule), string(outcome.Kind))
	s.logger.InfoContext(ctx, "organization join decided",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", userID,
		"siret", siret,
		"organization_id", outcome.Organization.ID,
		"rule", outcome.Rule,
		"outcome", outcome.Kind,
	)

	event := audit.Event{
		Action:         audit.EventOrganizationJoined,
		UserID:         userID,
		OrganizationID: outcome.Organization.ID,
		Siret:          siret,
		Rule:           string(outcome.Rule),
		Decision:       string(outcome.Kind),
	}
	if outcome.Kind == OutcomeBlocked {
		event.Action = audit.EventOrganizationJoinBlocked
		if t := outcome.Moderation.TicketID; t != nil {
			event.Reason = *t
		}
	} else {
		event.VerificationType = string(outcome.Link.VerificationType)
	}
	s.emitAudit(ctx, event)
	return outcome, nil
}

func (s *Service) join(ctx context.Context, siret string, userID int64) (*Outcome, error) {
	info, err := s.registry.FetchOrganizationInfo(ctx, siret)
	if err != nil {
		if errors.Is(err, registry.ErrUpstreamUnavailable) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "organization registry unavailable")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidSiret, "invalid siret")
	}

	org, err := s.orgs.Upsert(ctx, *info)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save organization")
	}
	if !org.Info.EstActive {
		return nil, dErrors.New(dErrors.CodeInactiveOrganization, "organization is not active")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeUserNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := s.ensureNotMember(ctx, userID, org.ID); err != nil {
		return nil, err
	}
	if err := s.ensureNotRequested(ctx, userID, org.ID); err != nil {
		return nil, err
	}

	plan := EvaluateJoin(s.gatherFacts(ctx, org, user))
	return s.apply(ctx, org, user, plan)
}

func (s *Service) ensureNotMember(ctx context.Context, userID, organizationID int64) error {
	_, err := s.orgs.FindLink(ctx, userID, organizationID)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeAlreadyMember, "user already belongs to organization")
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check membership")
	}
}

func (s *Service) ensureNotRequested(ctx context.Context, userID, organizationID int64) error {
	_, err := s.moderations.FindPending(ctx, userID, organizationID, moderationmodels.TypeOrganizationJoinBlock)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeAlreadyRequested, "a join request is already pending")
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check pending requests")
	}
}

// apply writes the plan. Domain changes, the informational case and the link
// share one transaction; a blocked request notifies the user before its case
// is recorded so the case can carry the ticket reference.
func (s *Service) apply(ctx context.Context, org *models.Organization, user *usermodels.User, plan Plan) (*Outcome, error) {
	outcome := &Outcome{Rule: plan.Rule, Organization: org}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if plan.VerifyContactDomain != "" {
			if err := s.orgs.MarkDomainVerified(ctx, org.ID, plan.VerifyContactDomain, models.VerificationOfficialContactDomain); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify contact domain")
			}
		}
		if plan.AuthorizeDomain != "" {
			if err := s.orgs.AddAuthorizedDomain(ctx, org.ID, plan.AuthorizeDomain); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to authorize domain")
			}
		}
		if plan.Action != ActionLink {
			return nil
		}

		if plan.FlagNonVerifiedDomain {
			flag, err := s.moderations.CreateIfAbsent(ctx, moderationmodels.Moderation{
				UserID:         user.ID,
				OrganizationID: org.ID,
				Type:           moderationmodels.TypeNonVerifiedDomain,
			})
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record moderation")
			}
			outcome.Moderation = flag
		}

		link, err := s.orgs.LinkUser(ctx, models.UserOrganizationLink{
			UserID:                                user.ID,
			OrganizationID:                        org.ID,
			IsExternal:                            plan.IsExternal,
			VerificationType:                      plan.VerificationType,
			NeedsOfficialContactEmailVerification: plan.NeedsOfficialContactEmailVerification,
		})
		if err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.Wrap(err, dErrors.CodeAlreadyMember, "user already belongs to organization")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link user")
		}
		outcome.Link = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.auditDomainChanges(ctx, org, user, plan)

	if plan.Action == ActionLink {
		outcome.Kind = OutcomeLinked
		return outcome, nil
	}

	ticket, err := s.notifier.SendUnableToAutoJoin(ctx, user.Email, org.Label())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to notify user")
	}
	block, err := s.moderations.Create(ctx, moderationmodels.Moderation{
		UserID:         user.ID,
		OrganizationID: org.ID,
		Type:           moderationmodels.TypeOrganizationJoinBlock,
		TicketID:       &ticket,
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Wrap(err, dErrors.CodeAlreadyRequested, "a join request is already pending")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record moderation")
	}
	outcome.Kind = OutcomeBlocked
	outcome.Moderation = block
	return outcome, nil
}

func (s *Service) auditDomainChanges(ctx context.Context, org *models.Organization, user *usermodels.User, plan Plan) {
	if plan.VerifyContactDomain != "" {
		s.emitAudit(ctx, audit.Event{
			Action:           audit.EventOrganizationDomainVerified,
			UserID:           user.ID,
			OrganizationID:   org.ID,
			Siret:            org.Siret,
			Rule:             string(plan.Rule),
			Domain:           plan.VerifyContactDomain,
			VerificationType: string(models.VerificationOfficialContactDomain),
		})
	}
	if plan.AuthorizeDomain != "" {
		s.emitAudit(ctx, audit.Event{
			Action:         audit.EventOrganizationDomainAdded,
			UserID:         user.ID,
			OrganizationID: org.ID,
			Siret:          org.Siret,
			Rule:           string(plan.Rule),
			Domain:         plan.AuthorizeDomain,
		})
	}
}

// ForceJoinOrganization links a user without consulting the registry or the
// join rules. Moderators use it to resolve blocked requests.
func (s *Service) ForceJoinOrganization(ctx context.Context, organizationID, userID int64, isExternal bool) (*models.UserOrganizationLink, error) {
	ctx, span := s.startSpan(ctx, "JoinService.ForceJoinOrganization")
	defer span.End()
	span.SetAttributes(attribute.Int64("organization_id", organizationID), attribute.Int64("user_id", userID))

	start := time.Now()
	link, err := s.forceJoin(ctx, organizationID, userID, isExternal)
	s.metrics.ObserveDecisionLatency("force_join", time.Since(start))
	if err != nil {
		span.RecordError(err)
		s.metrics.IncrementOutcome("force_join", string(dErrors.CodeOf(err)))
		return nil, err
	}

	s.metrics.IncrementOutcome("force_join", string(OutcomeLinked))
	s.logger.InfoContext(ctx, "organization join forced",
		"request_id", requestcontext.RequestID(ctx),
		"actor", requestcontext.Actor(ctx),
		"user_id", userID,
		"organization_id", organizationID,
		"is_external", isExternal,
		"verification_type", link.VerificationType,
	)
	s.emitAudit(ctx, audit.Event{
		Action:           audit.EventOrganizationForceJoined,
		UserID:           userID,
		OrganizationID:   organizationID,
		Decision:         string(OutcomeLinked),
		VerificationType: string(link.VerificationType),
	})
	return link, nil
}

func (s *Service) forceJoin(ctx context.Context, organizationID, userID int64, isExternal bool) (*models.UserOrganizationLink, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	org, err := s.orgs.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "organization not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load organization")
	}

	var link *models.UserOrganizationLink
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		link, err = s.orgs.LinkUser(ctx, models.UserOrganizationLink{
			UserID:           user.ID,
			OrganizationID:   org.ID,
			IsExternal:       isExternal,
			VerificationType: forcedVerificationType(org, s.classifier.EmailDomain(user.Email)),
		})
		if err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.Wrap(err, dErrors.CodeAlreadyMember, "user already belongs to organization")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to link user")
		}
		return s.resolvePendingBlock(ctx, user.ID, org.ID)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// resolvePendingBlock closes the user's open join request for the
// organization, if any. The moderator is taken from the request actor.
func (s *Service) resolvePendingBlock(ctx context.Context, userID, organizationID int64) error {
	pending, err := s.moderations.FindPending(ctx, userID, organizationID, moderationmodels.TypeOrganizationJoinBlock)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check pending moderation")
	}

	by := requestcontext.Actor(ctx)
	if by == "" {
		by = "system"
	}
	err = s.moderations.MarkModerated(ctx, pending.ID, by, requestcontext.Now(ctx))
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to close moderation")
	}
	s.logger.InfoContext(ctx, "join request resolved by forced join",
		"request_id", requestcontext.RequestID(ctx),
		"moderation_id", pending.ID,
		"moderated_by", by,
	)
	return nil
}

func forcedVerificationType(org *models.Organization, domain string) models.VerificationType {
	if containsDomain(org.VerifiedEmailDomains, domain) || containsDomain(org.ExternalAuthorizedEmailDomains, domain) {
		return models.VerificationVerifiedEmailDomain
	}
	return models.VerificationNone
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorID == "" {
		event.ActorID = requestcontext.Actor(ctx)
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.metrics.IncrementAuditFailure()
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"user_id", event.UserID,
			"error", err,
		)
	}
}

func (s *Service) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}
