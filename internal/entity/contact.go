package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Pipeline statuses a contact moves through. No automatic transitions;
// only an admin action changes status.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

var ErrInvalidStatus = errors.New("invalid contact status")

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Note is one annotation on a contact. Notes are always replaced
// wholesale when a contact is saved from the edit form.
type Note struct {
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Notes     []Note    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewContact(name, email, phone, subject, message string) (*Contact, error) {
	contact := &Contact{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Subject: subject,
		Message: message,
		Status:  StatusNew,
		Notes:   []Note{},
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	return contact, nil
}

func (c *Contact) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" {
		return errors.New("email is required")
	}
	if c.Phone == "" {
		return errors.New("phone is required")
	}
	if c.Message == "" {
		return errors.New("message is required")
	}
	if !ValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ParseNotes rebuilds the note list from the flattened text block the
// admin form submits: one note per line, blanks dropped, each line
// trimmed and stamped with now. Prior note identity does not survive.
func ParseNotes(text string, now time.Time) []Note {
	notes := []Note{}
	for _, line := range strings.Split(text, "\n") {
		content := strings.TrimSpace(line)
		if content == "" {
			continue
		}
		notes = append(notes, Note{Content: content, Date: now})
	}
	return notes
}

// FlattenNotes is the inverse used to pre-fill the edit form.
func FlattenNotes(notes []Note) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, n.Content)
	}
	return strings.Join(lines, "\n")
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, c *Contact) (string, error)
	List(ctx context.Context) ([]Contact, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Remove(ctx context.Context, id string) error
}
