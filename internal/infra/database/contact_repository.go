package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jatinenterprises/site-backend/internal/entity"
)

var ErrContactNotFound = errors.New("contact not found")

// Columns an admin edit is allowed to touch. Anything else in the
// partial-update map is rejected before it reaches SQL.
var contactColumns = map[string]bool{
	"name":    true,
	"email":   true,
	"phone":   true,
	"subject": true,
	"message": true,
	"status":  true,
	"notes":   true,
}

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

// Create persists a new contact. The id and both timestamps are assigned
// by the database, never by the caller.
func (r *ContactRepository) Create(ctx context.Context, c *entity.Contact) (string, error) {
	notes, err := json.Marshal(c.Notes)
	if err != nil {
		return "", wrapError("create", err)
	}

	query := `
		INSERT INTO contacts (name, email, phone, subject, message, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = r.DB.QueryRowContext(ctx, query,
		c.Name,
		c.Email,
		c.Phone,
		nullString(c.Subject),
		c.Message,
		c.Status,
		notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return "", wrapError("create", err)
	}

	return c.ID, nil
}

// List returns every contact, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]entity.Contact, error) {
	query := `
		SELECT id, name, email, phone, COALESCE(subject, ''), message, status, notes, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("list", err)
	}
	defer rows.Close()

	contacts := []entity.Contact{}
	for rows.Next() {
		var c entity.Contact
		var notes []byte
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject,
			&c.Message, &c.Status, &notes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, wrapError("list", err)
		}

		if len(notes) > 0 {
			if err := json.Unmarshal(notes, &c.Notes); err != nil {
				return nil, wrapError("list", err)
			}
		}
		if c.Notes == nil {
			c.Notes = []entity.Note{}
		}

		contacts = append(contacts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("list", err)
	}

	return contacts, nil
}

// Update merges the given fields into the row and refreshes updated_at.
// Status is written as-is here; enum enforcement lives with the caller.
func (r *ContactRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)

	for col, val := range fields {
		if !contactColumns[col] {
			return wrapError("update", fmt.Errorf("column %q is not updatable", col))
		}
		if col == "notes" {
			raw, err := json.Marshal(val)
			if err != nil {
				return wrapError("update", err)
			}
			val = raw
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE contacts SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError("update", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrContactNotFound
	}

	return nil
}

// Remove deletes unconditionally. Confirmation is the caller's job.
func (r *ContactRepository) Remove(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return wrapError("remove", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrContactNotFound
	}

	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
