package services

import (
	"context"
	"fmt"
	"log/slog"

	"together/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRequestCreated tells an event owner that a guest asked to join.
func (s *emailService) SendRequestCreated(ctx context.Context, data *domain.RequestCreatedEmailData) error {
	if data == nil {
		return fmt.Errorf("request created email data is nil")
	}
	return s.send(ctx, domain.NotificationRequestCreated, data.Email, data)
}

// SendRequestDecided tells a guest the owner's decision.
func (s *emailService) SendRequestDecided(ctx context.Context, data *domain.RequestDecidedEmailData) error {
	if data == nil {
		return fmt.Errorf("request decided email data is nil")
	}
	return s.send(ctx, domain.NotificationRequestDecided, data.Email, data)
}

func (s *emailService) send(ctx context.Context, typ domain.NotificationType, to string, data any) error {
	msg, err := s.renderer.Render(typ, data)
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", typ, err)
	}
	if err := s.mailer.Send(ctx, to, msg.Subject, msg.HTML, msg.Text); err != nil {
		return fmt.Errorf("failed to send %s email: %w", typ, err)
	}
	s.logger.InfoContext(ctx, "email sent", "type", typ, "to", to)
	return nil
}
