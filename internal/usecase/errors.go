package usecase

import "errors"

// DomainError is a business rejection the caller can act on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is an infrastructure failure. Message is already
// sanitized for the visitor; the raw cause goes to the log.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

var (
	// ErrAccessDenied means the viewer lacks the capability the
	// operation requires. The triage console never reaches the store
	// when it returns this.
	ErrAccessDenied = errors.New("admin access required")

	// ErrConfirmationRequired means a destructive call arrived without
	// the caller having confirmed it first.
	ErrConfirmationRequired = errors.New("delete requires confirmation")

	// ErrSubmissionInFlight rejects a duplicate submit while the first
	// one is still running.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)
