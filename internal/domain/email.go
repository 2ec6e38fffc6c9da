package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// RenderedEmail is a message ready for a Mailer.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// EmailTemplateRenderer renders the email sent for a notification type.
type EmailTemplateRenderer interface {
	Render(t NotificationType, data any) (*RenderedEmail, error)
}

// RequestCreatedEmailData is sent to an event owner when a guest asks to join.
type RequestCreatedEmailData struct {
	Email      string
	OwnerName  string
	GuestName  string
	EventTitle string
	EventID    int64
}

// RequestDecidedEmailData is sent to a guest when the owner accepts or rejects the request.
type RequestDecidedEmailData struct {
	Email      string
	GuestName  string
	EventTitle string
	EventID    int64
	Accepted   bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRequestCreated(ctx context.Context, data *RequestCreatedEmailData) error
	SendRequestDecided(ctx context.Context, data *RequestDecidedEmailData) error
}
