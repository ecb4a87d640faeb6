package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogNotifier logs messages instead of sending them and returns a generated
// reference. Used when mail delivery is disabled.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendUnableToAutoJoin(ctx context.Context, to, label string) (string, error) {
	msg := unableToAutoJoin(to, label)
	ref := "dry-run-" + uuid.NewString()
	n.logger.InfoContext(ctx, "mail not sent",
		"template", msg.Template,
		"to", msg.To,
		"subject", msg.Subject,
		"params", msg.Params,
		"message_id", ref,
	)
	return ref, nil
}
