package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"yaake-backend/config"
)

// Service handles sending emails via SMTP
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// NewService creates a new email service from SMTP configuration
func NewService(cfg *config.Config) *Service {
	return &Service{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// outreachTemplate wraps plain-text outreach content in a minimal HTML shell
const outreachTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .content { padding: 20px; background: #f9f9f9; white-space: pre-line; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="content">{{.Body}}</div>
        <div class="footer">
            <p>Sent via Yaake Recruiting</p>
        </div>
    </div>
</body>
</html>`

// SendOutreach sends an outreach email to a single recipient
func (s *Service) SendOutreach(to, subject, body string) error {
	tmpl, err := template.New("outreach").Parse(outreachTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var html bytes.Buffer
	if err := tmpl.Execute(&html, struct{ Body string }{Body: body}); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		html.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
