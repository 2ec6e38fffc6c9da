package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"together/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateBases names the embedded files for each notification type:
// <base>_subject.txt, <base>.html and <base>.txt.
var templateBases = map[domain.NotificationType]string{
	domain.NotificationRequestCreated: "request_created",
	domain.NotificationRequestDecided: "request_decided",
}

type notificationTemplates struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

type templateRenderer struct {
	byType map[domain.NotificationType]*notificationTemplates
}

// NewTemplateRenderer parses the templates of every notification type up front.
func NewTemplateRenderer() (domain.EmailTemplateRenderer, error) {
	r := &templateRenderer{byType: make(map[domain.NotificationType]*notificationTemplates, len(templateBases))}
	for typ, base := range templateBases {
		tpl, err := parseNotificationTemplates(base)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", typ, err)
		}
		r.byType[typ] = tpl
	}
	return r, nil
}

func parseNotificationTemplates(base string) (*notificationTemplates, error) {
	subject, err := texttemplate.ParseFS(templateFS, "templates/"+base+"_subject.txt")
	if err != nil {
		return nil, err
	}
	html, err := htmltemplate.ParseFS(templateFS, "templates/"+base+".html")
	if err != nil {
		return nil, err
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/"+base+".txt")
	if err != nil {
		return nil, err
	}
	return &notificationTemplates{
		subject: subject.Option("missingkey=error"),
		html:    html.Option("missingkey=error"),
		text:    text.Option("missingkey=error"),
	}, nil
}

// Render produces the email for a notification of type typ.
func (r *templateRenderer) Render(typ domain.NotificationType, data any) (*domain.RenderedEmail, error) {
	tpl, ok := r.byType[typ]
	if !ok {
		return nil, fmt.Errorf("no email template for %s", typ)
	}
	var subject, html, text bytes.Buffer
	if err := tpl.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	if err := tpl.html.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if err := tpl.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	return &domain.RenderedEmail{
		Subject: strings.TrimSpace(subject.String()),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
