package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/auth"
	"github.com/jatinenterprises/site-backend/internal/infra/database"
	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
)

// PageSizes the console offers. Pagination is purely over the cached
// list; the store is only read on load and after mutations.
var PageSizes = []int{5, 10, 25}

const DefaultPageSize = 10

// ContactForm is the one dialog shape shared by create and edit,
// distinguished by whether ID is bound. NotesText is the flattened
// multi-line block; saving always rebuilds the whole note list from it.
type ContactForm struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	NotesText string `json:"notes_text"`
}

type ContactPage struct {
	Contacts []entity.Contact `json:"contacts"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// TriageConsole owns the cached lead list. Every mutation round-trips to
// the store and refreshes the cache on success; on failure the cache is
// left exactly as it was, so the admin never loses the last good view.
type TriageConsole struct {
	Repo  ContactRepositoryInterface
	Authz CapabilityChecker

	mu       sync.RWMutex
	contacts []entity.Contact
	loaded   bool
}

func NewTriageConsole(repo ContactRepositoryInterface, authz CapabilityChecker) *TriageConsole {
	return &TriageConsole{
		Repo:  repo,
		Authz: authz,
	}
}

func (t *TriageConsole) authorize(viewer *identity.Viewer) error {
	if !t.Authz.HasCapability(viewer, auth.CapabilityManageLeads) {
		return ErrAccessDenied
	}
	return nil
}

// Load pulls the list once for an authorized viewer. An unauthorized
// viewer is turned away before any store call is made.
func (t *TriageConsole) Load(ctx context.Context, viewer *identity.Viewer) error {
	if err := t.authorize(viewer); err != nil {
		return err
	}
	return t.refresh(ctx)
}

// EnsureLoaded issues the initial list only on the first authorized
// visit; after that the cache serves until a mutation refreshes it.
func (t *TriageConsole) EnsureLoaded(ctx context.Context, viewer *identity.Viewer) error {
	if err := t.authorize(viewer); err != nil {
		return err
	}

	t.mu.RLock()
	loaded := t.loaded
	t.mu.RUnlock()
	if loaded {
		return nil
	}

	return t.refresh(ctx)
}

// Page slices the cached list. size must be one of PageSizes; anything
// else falls back to the default. page is zero-based.
func (t *TriageConsole) Page(viewer *identity.Viewer, page, size int) (*ContactPage, error) {
	if err := t.authorize(viewer); err != nil {
		return nil, err
	}

	if !validPageSize(size) {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	total := len(t.contacts)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	contacts := make([]entity.Contact, end-start)
	copy(contacts, t.contacts[start:end])

	return &ContactPage{
		Contacts: contacts,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// ChangeStatus is the inline row edit: one field, immediate round-trip,
// then a refresh so the view reflects what the store actually holds.
func (t *TriageConsole) ChangeStatus(ctx context.Context, viewer *identity.Viewer, id, status string) error {
	if err := t.authorize(viewer); err != nil {
		return err
	}

	// The store adapter would happily write anything; the enum is
	// enforced here.
	if !entity.ValidStatus(status) {
		return &DomainError{Code: "VALIDATION_ERROR", Message: "status must be one of new, contacted, qualified, converted, lost"}
	}

	if err := t.Repo.Update(ctx, id, map[string]any{"status": status}); err != nil {
		return t.adminError("update status", err)
	}

	return t.refreshAfterMutation(ctx)
}

// Save handles both create and edit. Notes are rebuilt from the text
// block with fresh timestamps on every save; prior per-note identity is
// deliberately not preserved.
func (t *TriageConsole) Save(ctx context.Context, viewer *identity.Viewer, form ContactForm) (string, error) {
	if err := t.authorize(viewer); err != nil {
		return "", err
	}

	status := form.Status
	if status == "" {
		status = entity.StatusNew
	}
	if !entity.ValidStatus(status) {
		return "", &DomainError{Code: "VALIDATION_ERROR", Message: "status must be one of new, contacted, qualified, converted, lost"}
	}

	notes := entity.ParseNotes(form.NotesText, time.Now())

	if form.ID != "" {
		fields := map[string]any{
			"name":    form.Name,
			"email":   form.Email,
			"phone":   form.Phone,
			"subject": form.Subject,
			"message": form.Message,
			"status":  status,
			"notes":   notes,
		}
		if err := t.Repo.Update(ctx, form.ID, fields); err != nil {
			return "", t.adminError("save contact", err)
		}
		if err := t.refreshAfterMutation(ctx); err != nil {
			return "", err
		}
		return form.ID, nil
	}

	contact := &entity.Contact{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: form.Subject,
		Message: form.Message,
		Status:  status,
		Notes:   notes,
	}
	if err := contact.Validate(); err != nil {
		return "", &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	id, err := t.Repo.Create(ctx, contact)
	if err != nil {
		return "", t.adminError("create contact", err)
	}
	if err := t.refreshAfterMutation(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// Delete requires the caller to have confirmed first. On store failure
// the cached list is untouched, so no row shows as deleted when it
// was not.
func (t *TriageConsole) Delete(ctx context.Context, viewer *identity.Viewer, id string, confirmed bool) error {
	if err := t.authorize(viewer); err != nil {
		return err
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := t.Repo.Remove(ctx, id); err != nil {
		return t.adminError("delete contact", err)
	}

	return t.refreshAfterMutation(ctx)
}

// EditForm pre-fills the dialog for an existing row from the cache,
// flattening notes back into the text block.
func (t *TriageConsole) EditForm(viewer *identity.Viewer, id string) (*ContactForm, error) {
	if err := t.authorize(viewer); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, c := range t.contacts {
		if c.ID == id {
			return &ContactForm{
				ID:        c.ID,
				Name:      c.Name,
				Email:     c.Email,
				Phone:     c.Phone,
				Subject:   c.Subject,
				Message:   c.Message,
				Status:    c.Status,
				NotesText: entity.FlattenNotes(c.Notes),
			}, nil
		}
	}

	return nil, database.ErrContactNotFound
}

func (t *TriageConsole) refresh(ctx context.Context) error {
	contacts, err := t.Repo.List(ctx)
	if err != nil {
		// Last-known-good stays on screen.
		return t.adminError("fetch contacts", err)
	}

	t.mu.Lock()
	t.contacts = contacts
	t.loaded = true
	t.mu.Unlock()
	return nil
}

// refreshAfterMutation reloads after a successful write. If the reload
// itself fails the stale cache is kept and the error surfaced.
func (t *TriageConsole) refreshAfterMutation(ctx context.Context) error {
	return t.refresh(ctx)
}

// adminError renders actionable guidance: a permission failure and a
// missing index need different fixes, and the admin should know which.
func (t *TriageConsole) adminError(op string, err error) error {
	log.Printf("[triage] %s failed: %v", op, err)

	switch {
	case database.IsPermissionDenied(err):
		return &TechnicalError{
			Code:    "PERMISSION_DENIED",
			Message: "Permission denied. Check that you are signed in with the admin account and that the store access rules are published.",
		}
	case database.IsPreconditionFailed(err):
		return &TechnicalError{
			Code:    "PRECONDITION_FAILED",
			Message: "The store needs an index for this listing. Create it in the console and retry.",
		}
	default:
		return &TechnicalError{
			Code:    "STORE_ERROR",
			Message: "Failed to " + op + ". Please try again.",
		}
	}
}

func validPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}
