package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"together/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return nil
}

type fakeRenderer struct {
	typ domain.NotificationType
	err error
}

func (r *fakeRenderer) Render(typ domain.NotificationType, data any) (*domain.RenderedEmail, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.typ = typ
	return &domain.RenderedEmail{Subject: "subject:" + string(typ), HTML: "<p>" + string(typ) + "</p>", Text: string(typ)}, nil
}

func TestEmailService_SendRequestCreated(t *testing.T) {
	ctx := context.Background()
	data := &domain.RequestCreatedEmailData{Email: "owner@example.com", EventTitle: "Run"}

	tests := []struct {
		name      string
		data      *domain.RequestCreatedEmailData
		mailErr   error
		renderErr error
		wantErr   bool
	}{
		{name: "success", data: data},
		{name: "nil data", data: nil, wantErr: true},
		{name: "render error", data: data, renderErr: errors.New("bad template"), wantErr: true},
		{name: "send error", data: data, mailErr: errors.New("ses down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{err: tt.mailErr}
			renderer := &fakeRenderer{err: tt.renderErr}
			svc := NewEmailService(mailer, renderer, testLogger)

			err := svc.SendRequestCreated(ctx, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.NotificationRequestCreated, renderer.typ)
			assert.Equal(t, "owner@example.com", mailer.to)
			assert.Equal(t, "subject:request.created", mailer.subject)
		})
	}
}

func TestEmailService_SendRequestDecided(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)

	err := svc.SendRequestDecided(context.Background(), &domain.RequestDecidedEmailData{Email: "guest@example.com", Accepted: true})
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationRequestDecided, renderer.typ)
	assert.Equal(t, "guest@example.com", mailer.to)

	require.Error(t, svc.SendRequestDecided(context.Background(), nil))
}
