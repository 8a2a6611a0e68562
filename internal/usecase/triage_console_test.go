package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/auth"
	"github.com/jatinenterprises/site-backend/internal/infra/database"
	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
)

const adminEmail = "owner@jatinenterprises.in"

func adminViewer() *identity.Viewer {
	return &identity.Viewer{ID: "u1", Email: "Owner@JatinEnterprises.in", Name: "Owner"}
}

func visitorViewer() *identity.Viewer {
	return &identity.Viewer{ID: "u2", Email: "visitor@example.com", Name: "Visitor"}
}

func newConsole(repo ContactRepositoryInterface) *TriageConsole {
	// The real gate doubles as the capability checker; the provider is
	// never touched by HasCapability.
	return NewTriageConsole(repo, auth.NewGate(nil, adminEmail))
}

func sampleContacts() []entity.Contact {
	now := time.Now()
	contacts := make([]entity.Contact, 0, 12)
	for i := 0; i < 12; i++ {
		contacts = append(contacts, entity.Contact{
			ID:        string(rune('a' + i)),
			Name:      "Contact",
			Email:     "c@example.com",
			Phone:     "123",
			Message:   "hello",
			Status:    entity.StatusNew,
			Notes:     []entity.Note{},
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
			UpdatedAt: now,
		})
	}
	return contacts
}

func TestTriageNonAdminNeverTouchesStore(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	console := newConsole(repo)

	assert.ErrorIs(t, console.Load(ctx, visitorViewer()), ErrAccessDenied)
	assert.ErrorIs(t, console.Load(ctx, nil), ErrAccessDenied)

	_, err := console.Page(visitorViewer(), 0, 10)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = console.ChangeStatus(ctx, nil, "x", entity.StatusContacted)
	assert.ErrorIs(t, err, ErrAccessDenied)

	repo.AssertNotCalled(t, "List", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriageAdminEmailMatchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)

	console := newConsole(repo)

	assert.NoError(t, console.Load(ctx, adminViewer()))
	repo.AssertCalled(t, "List", ctx)
}

func TestTriageEnsureLoadedListsOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)

	console := newConsole(repo)

	assert.NoError(t, console.EnsureLoaded(ctx, adminViewer()))
	assert.NoError(t, console.EnsureLoaded(ctx, adminViewer()))

	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestTriagePagination(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)

	console := newConsole(repo)
	assert.NoError(t, console.Load(ctx, adminViewer()))

	page, err := console.Page(adminViewer(), 0, 5)
	assert.NoError(t, err)
	assert.Len(t, page.Contacts, 5)
	assert.Equal(t, 12, page.Total)

	page, err = console.Page(adminViewer(), 2, 5)
	assert.NoError(t, err)
	assert.Len(t, page.Contacts, 2)

	// A size outside 5/10/25 falls back to the default.
	page, err = console.Page(adminViewer(), 0, 7)
	assert.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Contacts, 10)

	// Past the end is empty, not an error.
	page, err = console.Page(adminViewer(), 9, 25)
	assert.NoError(t, err)
	assert.Empty(t, page.Contacts)
}

func TestTriageChangeStatusRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)
	repo.On("Update", ctx, "a", map[string]any{"status": entity.StatusQualified}).Return(nil)

	console := newConsole(repo)
	assert.NoError(t, console.Load(ctx, adminViewer()))

	assert.NoError(t, console.ChangeStatus(ctx, adminViewer(), "a", entity.StatusQualified))

	// One list on load, one refresh after the update.
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestTriageChangeStatusRejectsUnknownValue(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)

	console := newConsole(repo)

	err := console.ChangeStatus(ctx, adminViewer(), "a", "archived")

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTriageSaveCreateDefaultsToNew(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)
	repo.On("Create", ctx, mock.Anything).Return("new-id", nil)

	console := newConsole(repo)

	id, err := console.Save(ctx, adminViewer(), ContactForm{
		Name:      "Manual",
		Email:     "m@example.com",
		Phone:     "555",
		Message:   "walk-in",
		NotesText: "called back\n\nprefers evening",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new-id", id)

	created := repo.Calls[0].Arguments.Get(1).(*entity.Contact)
	assert.Equal(t, entity.StatusNew, created.Status)
	assert.Len(t, created.Notes, 2)
	assert.Equal(t, "called back", created.Notes[0].Content)
	assert.Equal(t, "prefers evening", created.Notes[1].Content)
}

func TestTriageSaveEditReplacesNotesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)
	repo.On("Update", ctx, "a", mock.Anything).Return(nil)

	console := newConsole(repo)

	_, err := console.Save(ctx, adminViewer(), ContactForm{
		ID:        "a",
		Name:      "Contact",
		Email:     "c@example.com",
		Phone:     "123",
		Message:   "hello",
		Status:    entity.StatusContacted,
		NotesText: "a\nb\n\nc",
	})
	assert.NoError(t, err)

	fields := repo.Calls[0].Arguments.Get(2).(map[string]any)
	notes := fields["notes"].([]entity.Note)
	assert.Len(t, notes, 3)
	assert.Equal(t, "a", notes[0].Content)
	assert.Equal(t, "c", notes[2].Content)
	assert.Equal(t, entity.StatusContacted, fields["status"])
}

func TestTriageSaveFailureLeavesCacheIntact(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	cached := sampleContacts()
	repo.On("List", ctx).Return(cached, nil)
	repo.On("Update", ctx, "a", mock.Anything).Return(&database.StoreError{
		Code: database.CodeUnavailable, Op: "update", Err: errors.New("down"),
	})

	console := newConsole(repo)
	assert.NoError(t, console.Load(ctx, adminViewer()))

	before, _ := console.Page(adminViewer(), 0, 25)

	_, err := console.Save(ctx, adminViewer(), ContactForm{
		ID: "a", Name: "Contact", Email: "c@example.com", Phone: "123",
		Message: "hello", Status: entity.StatusLost,
	})
	assert.Error(t, err)

	after, _ := console.Page(adminViewer(), 0, 25)
	assert.Equal(t, before.Contacts, after.Contacts)

	// No refresh happened after the failed mutation.
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestTriageDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)

	console := newConsole(repo)

	err := console.Delete(ctx, adminViewer(), "a", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	repo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestTriageDeleteFailureLeavesCacheIntact(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	repo.On("List", ctx).Return(sampleContacts(), nil)
	repo.On("Remove", ctx, "a").Return(&database.StoreError{
		Code: database.CodePermissionDenied, Op: "remove", Err: errors.New("denied"),
	})

	console := newConsole(repo)
	assert.NoError(t, console.Load(ctx, adminViewer()))

	before, _ := console.Page(adminViewer(), 0, 25)

	err := console.Delete(ctx, adminViewer(), "a", true)
	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, "PERMISSION_DENIED", techErr.Code)

	after, _ := console.Page(adminViewer(), 0, 25)
	assert.Equal(t, before.Contacts, after.Contacts)
}

func TestTriageListFailureGuidanceDistinguishesCauses(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		storeErr *database.StoreError
		wantCode string
	}{
		{"permission", &database.StoreError{Code: database.CodePermissionDenied, Op: "list", Err: errors.New("x")}, "PERMISSION_DENIED"},
		{"missing index", &database.StoreError{Code: database.CodePreconditionFailed, Op: "list", Err: errors.New("x")}, "PRECONDITION_FAILED"},
		{"other", &database.StoreError{Code: database.CodeInternal, Op: "list", Err: errors.New("x")}, "STORE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockContactRepository)
			repo.On("List", ctx).Return(nil, tc.storeErr)

			console := newConsole(repo)
			err := console.Load(ctx, adminViewer())

			var techErr *TechnicalError
			assert.ErrorAs(t, err, &techErr)
			assert.Equal(t, tc.wantCode, techErr.Code)
		})
	}
}

func TestTriageEditFormFlattensNotes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)

	contacts := sampleContacts()
	contacts[0].Notes = []entity.Note{
		{Content: "a", Date: time.Now()},
		{Content: "b", Date: time.Now()},
		{Content: "c", Date: time.Now()},
	}
	repo.On("List", ctx).Return(contacts, nil)

	console := newConsole(repo)
	assert.NoError(t, console.Load(ctx, adminViewer()))

	form, err := console.EditForm(adminViewer(), contacts[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, "a\nb\nc", form.NotesText)

	_, err = console.EditForm(adminViewer(), "missing")
	assert.ErrorIs(t, err, database.ErrContactNotFound)
}
