package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultSendGridHost = "https://api.sendgrid.com"
	sendEndpoint        = "/v3/mail/send"
)

// ErrRejected is returned when SendGrid refuses the message for good.
var ErrRejected = errors.New("mail provider rejected message")

// SendGridNotifier sends dynamic template emails through SendGrid, retrying
// transient failures.
type SendGridNotifier struct {
	apiKey          string
	host            string
	templateID      string
	from            *mail.Email
	maxRetries      uint
	initialInterval time.Duration
	logger          *slog.Logger
}

type SendGridOption func(*SendGridNotifier)

func WithHost(host string) SendGridOption {
	return func(n *SendGridNotifier) {
		if host != "" {
			n.host = host
		}
	}
}

func WithMaxRetries(retries uint) SendGridOption {
	return func(n *SendGridNotifier) { n.maxRetries = retries }
}

func WithInitialInterval(d time.Duration) SendGridOption {
	return func(n *SendGridNotifier) { n.initialInterval = d }
}

func WithLogger(l *slog.Logger) SendGridOption {
	return func(n *SendGridNotifier) { n.logger = l }
}

func NewSendGridNotifier(apiKey, templateID, fromEmail, fromName string, opts ...SendGridOption) *SendGridNotifier {
	n := &SendGridNotifier{
		apiKey:          apiKey,
		host:            defaultSendGridHost,
		templateID:      templateID,
		from:            mail.NewEmail(fromName, fromEmail),
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendUnableToAutoJoin sends the notice and returns the provider message id.
func (n *SendGridNotifier) SendUnableToAutoJoin(ctx context.Context, to, label string) (string, error) {
	return n.send(ctx, unableToAutoJoin(to, label))
}

func (n *SendGridNotifier) send(ctx context.Context, msg Message) (string, error) {
	v3 := mail.NewV3Mail()
	v3.SetFrom(n.from)
	v3.SetTemplateID(n.templateID)
	v3.Subject = msg.Subject
	v3.AddCategories(msg.Template)

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	p.Subject = msg.Subject
	for k, v := range msg.Params {
		p.SetDynamicTemplateData(k, v)
	}
	p.SetDynamicTemplateData("subject", msg.Subject)
	v3.AddPersonalizations(p)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = n.initialInterval

	attempt := 0
	ref, err := backoff.Retry(ctx, func() (string, error) {
		attempt++
		req := sendgrid.GetRequest(n.apiKey, sendEndpoint, n.host)
		req.Method = "POST"
		req.Body = mail.GetRequestBody(v3)
		resp, err := sendgrid.MakeRequestWithContext(ctx, req)
		if err != nil {
			n.logger.WarnContext(ctx, "sendgrid request failed", "attempt", attempt, "error", err)
			return "", err
		}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			n.logger.WarnContext(ctx, "sendgrid unavailable", "attempt", attempt, "status", resp.StatusCode)
			return "", fmt.Errorf("sendgrid status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return "", backoff.Permanent(fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, resp.Body))
		}
		return http.Header(resp.Headers).Get("X-Message-Id"), nil
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(n.maxRetries+1))
	if err != nil {
		return "", fmt.Errorf("send %s: %w", msg.Template, err)
	}

	n.logger.InfoContext(ctx, "notification sent",
		"template", msg.Template,
		"message_id", ref,
	)
	return ref, nil
}
