package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TeamInviteEmailData holds data for the team invitation email.
type TeamInviteEmailData struct {
	Email       string
	TeamName    string
	TeamPIN     string
	InviterName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTeamInvite(ctx context.Context, data *TeamInviteEmailData) error
}
