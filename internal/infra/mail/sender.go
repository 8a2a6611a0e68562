package mail

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"gopkg.in/gomail.v2"
)

// ErrNotConfigured means the relay credentials are missing or still
// placeholders. Callers must see this before any dial is attempted.
var ErrNotConfigured = errors.New("mail relay not configured")

func NewEmailSender(host string, port int, user, password, from, inbox string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Inbox:    inbox,
	}
}

// Configured reports whether the sender can actually dial the relay.
// "YOUR_..." values are the placeholders shipped in .env.example.
func (s *EmailSender) Configured() bool {
	for _, v := range []string{s.Host, s.User, s.Password, s.From, s.Inbox} {
		if v == "" || strings.Contains(v, "YOUR_") {
			return false
		}
	}
	return s.Port > 0
}

// SendLeadNotification delivers a new-inquiry notification to the
// business inbox. It reports failure; it never stores anything.
func (s *EmailSender) SendLeadNotification(data LeadNotificationData) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	body, err := renderTemplate("lead_notification.html", data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.Inbox)
	m.SetHeader("Reply-To", data.ReplyTo)
	m.SetHeader("Subject", fmt.Sprintf("New inquiry from %s", data.FromName))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending lead notification: %w", err)
	}

	return nil
}

// SendAcknowledgment thanks the visitor for getting in touch. Used by
// the queue worker after a lead lands in the store.
func (s *EmailSender) SendAcknowledgment(to string, data AcknowledgmentData) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	body, err := renderTemplate("acknowledgment.html", data)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "We received your message")
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("sending acknowledgment: %w", err)
	}

	return nil
}

func renderTemplate(name string, data any) (string, error) {
	tmplPath := filepath.Join("templates", name)
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("rendering email template: %w", err)
	}

	return body.String(), nil
}
