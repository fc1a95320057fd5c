package slack

import (
	"context"
	"log/slog"
	"time"
)

// ServiceConfig holds the parameters needed to construct a Service.
type ServiceConfig struct {
	Token   string
	Channel string
}

// Service posts sweep-summary notifications to Slack. Implements
// pkg/scheduler.Notifier. Nil-safe: Notify is a no-op when the service is
// nil, so wiring it in is safe even when no token is configured.
type Service struct {
	client *Client
	logger *slog.Logger
}

// NewService creates a new Slack notification service. Returns nil if Token
// or Channel is empty: absent config disables the feature rather than
// erroring.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Token == "" || cfg.Channel == "" {
		return nil
	}
	return &Service{
		client: NewClient(cfg.Token, cfg.Channel),
		logger: slog.Default().With("component", "slack-service"),
	}
}

// NewServiceWithClient creates a Service backed by a pre-built Client.
// Useful for testing with a mock API server.
func NewServiceWithClient(client *Client) *Service {
	return &Service{client: client, logger: slog.Default().With("component", "slack-service")}
}

// Notify posts text to the configured channel. Fail-open by convention of
// its caller (pkg/scheduler logs but never aborts a sweep on a notify
// error); Notify itself still reports the error so the caller can log it.
func (s *Service) Notify(ctx context.Context, text string) error {
	if s == nil {
		return nil
	}
	if err := s.client.PostMessage(ctx, text, 10*time.Second); err != nil {
		s.logger.Error("failed to send Slack notification", "error", err)
		return err
	}
	return nil
}
