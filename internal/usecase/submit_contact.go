package usecase

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jatinenterprises/site-backend/internal/entity"
	"github.com/jatinenterprises/site-backend/internal/infra/database"
	"github.com/jatinenterprises/site-backend/internal/infra/mail"
	"github.com/jatinenterprises/site-backend/internal/infra/queue"
)

// Outcome levels for one submission. Warning means the lead was saved
// but the notification never went out; the form is still cleared because
// nothing was lost.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
)

type SubmitContactInput struct {
	// FormToken identifies one form instance so a double-click cannot
	// produce two submissions. Falls back to the client address upstream.
	FormToken string `json:"form_token"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SubmitContactOutput struct {
	ID        string `json:"id"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	ClearForm bool   `json:"clear_form"`
}

// SubmitContactUseCase runs one public submission: notify first, persist
// regardless of the notify outcome, then best-effort event publish.
type SubmitContactUseCase struct {
	Repo         ContactRepositoryInterface
	EmailService EmailService
	Queue        QueueProducerInterface

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewSubmitContactUseCase(
	repo ContactRepositoryInterface,
	emailService EmailService,
	producer QueueProducerInterface,
) *SubmitContactUseCase {
	return &SubmitContactUseCase{
		Repo:         repo,
		EmailService: emailService,
		Queue:        producer,
		inFlight:     make(map[string]bool),
	}
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, input SubmitContactInput) (*SubmitContactOutput, error) {
	if !uc.begin(input.FormToken) {
		return nil, ErrSubmissionInFlight
	}
	defer uc.end(input.FormToken)

	if validationErrors := ValidateSubmitContactInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	// Step 1: notification, strictly before persistence. A failed or
	// unconfigured relay must never cost us the lead, so the error is
	// recorded and the flow continues.
	notifyErr := uc.EmailService.SendLeadNotification(mail.LeadNotificationData{
		FromName:  input.Name,
		FromEmail: input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		ReplyTo:   input.Email,
	})
	if notifyErr != nil {
		if errors.Is(notifyErr, mail.ErrNotConfigured) {
			log.Printf("[intake] notification skipped: relay not configured")
		} else {
			log.Printf("[intake] notification failed: %v", notifyErr)
		}
	}

	// Step 2: persistence, regardless of step 1.
	contact, err := entity.NewContact(input.Name, input.Email, input.Phone, input.Subject, input.Message)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	id, persistErr := uc.Repo.Create(ctx, contact)
	if persistErr != nil {
		// Terminal failure: the visitor keeps their input and retries.
		log.Printf("[intake] persistence failed (notify error was %v): %v", notifyErr, persistErr)
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: storeFailureMessage(persistErr),
		}
	}

	// Step 3: downstream event, best effort only.
	if uc.Queue != nil {
		if err := uc.Queue.PublishLeadCreated(ctx, queue.LeadCreatedPayload{
			ContactID: id,
			Name:      contact.Name,
			Email:     contact.Email,
			Subject:   contact.Subject,
		}); err != nil {
			log.Printf("[intake] lead event publish failed for %s: %v", id, err)
		}
	}

	if notifyErr != nil {
		return &SubmitContactOutput{
			ID:        id,
			Level:     LevelWarning,
			Message:   "Your message was saved, but our notification system is having trouble. We will still get back to you.",
			ClearForm: true,
		}, nil
	}

	return &SubmitContactOutput{
		ID:        id,
		Level:     LevelSuccess,
		Message:   "Message sent successfully!",
		ClearForm: true,
	}, nil
}

func (uc *SubmitContactUseCase) begin(token string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight[token] {
		return false
	}
	uc.inFlight[token] = true
	return true
}

func (uc *SubmitContactUseCase) end(token string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, token)
}

// storeFailureMessage keeps error codes out of the visitor's face while
// still saying whether this is an access problem or a transient one.
func storeFailureMessage(err error) string {
	switch {
	case database.IsPermissionDenied(err):
		return "Failed to send message: the site is not authorized to save inquiries right now. Please contact us directly."
	case database.IsPreconditionFailed(err):
		return "Failed to send message: the inquiry store is not fully set up yet. Please try again later."
	default:
		return "Failed to send message. Please try again."
	}
}
