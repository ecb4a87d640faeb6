package logger

import (
	"context"
	"log/slog"

	audit "moncomptepro/pkg/platform/audit"
)

// Store writes audit events as structured log lines.
type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.InfoContext(ctx, "audit",
		"event_id", event.ID,
		"category", event.Category,
		"action", event.Action,
		"user_id", event.UserID,
		"organization_id", event.OrganizationID,
		"siret", event.Siret,
		"rule", event.Rule,
		"decision", event.Decision,
		"verification_type", event.VerificationType,
		"domain", event.Domain,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"actor_id", event.ActorID,
	)
	return nil
}
