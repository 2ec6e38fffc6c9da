package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"together/internal/domain"
)

type notificationService struct {
	publisher domain.NotificationPublisher
	users     domain.UserRepository
	emails    domain.EmailService
	logger    *slog.Logger
}

// NewNotificationService fans notifications out to the real-time publisher and to email.
// Either channel may be nil.
func NewNotificationService(
	publisher domain.NotificationPublisher,
	users domain.UserRepository,
	emails domain.EmailService,
	logger *slog.Logger,
) domain.Notifier {
	return &notificationService{
		publisher: publisher,
		users:     users,
		emails:    emails,
		logger:    logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	log := s.logger.With("notification_id", n.ID, "type", n.Type, "recipient_id", n.RecipientID, "request_id", n.RequestID)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			log.ErrorContext(ctx, "publish notification failed", "err", err)
		}
	}
	if s.emails != nil {
		if err := s.email(ctx, n); err != nil {
			log.ErrorContext(ctx, "notification email failed", "err", err)
		}
	}
}

func (s *notificationService) email(ctx context.Context, n *domain.Notification) error {
	recipient, err := s.users.GetByID(ctx, n.RecipientID)
	if err != nil {
		return err
	}
	if recipient.Email == "" {
		return nil
	}

	switch n.Type {
	case domain.NotificationRequestCreated:
		guestName := n.GuestID
		if guest, err := s.users.GetByID(ctx, n.GuestID); err == nil {
			guestName = displayName(guest)
		}
		return s.emails.SendRequestCreated(ctx, &domain.RequestCreatedEmailData{
			Email:      recipient.Email,
			OwnerName:  displayName(recipient),
			GuestName:  guestName,
			EventTitle: n.EventTitle,
			EventID:    n.EventID,
		})
	case domain.NotificationRequestDecided:
		return s.emails.SendRequestDecided(ctx, &domain.RequestDecidedEmailData{
			Email:      recipient.Email,
			GuestName:  displayName(recipient),
			EventTitle: n.EventTitle,
			EventID:    n.EventID,
			Accepted:   n.StatusID == domain.RequestStatusAccepted,
		})
	}
	return nil
}

func displayName(u *domain.UserProfile) string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	}
	return u.ID
}
