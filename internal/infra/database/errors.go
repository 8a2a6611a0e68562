package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Store failure classes callers are expected to tell apart. A permission
// failure needs a "check your access rules" message, a precondition
// failure needs a "create the index" message, everything else is either
// transient or a bug.
const (
	CodePermissionDenied   = "permission-denied"
	CodePreconditionFailed = "failed-precondition"
	CodeUnavailable        = "unavailable"
	CodeInternal           = "internal"
)

type StoreError struct {
	Code string
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsPermissionDenied(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodePermissionDenied
}

func IsPreconditionFailed(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == CodePreconditionFailed
}

// wrapError maps driver failures onto the store error classes.
// 42501 is insufficient_privilege; 42P01/42704 mean the table or index
// backing the query has not been provisioned yet.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}

	code := CodeInternal

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42501":
			code = CodePermissionDenied
		case "42P01", "42704":
			code = CodePreconditionFailed
		case "57P01", "57P02", "57P03", "53300":
			code = CodeUnavailable
		}
	} else if errors.Is(err, context.DeadlineExceeded) {
		code = CodeUnavailable
	}

	return &StoreError{Code: code, Op: op, Err: err}
}
