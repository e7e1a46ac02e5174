package services

import (
	"errors"
	"fmt"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")

	ErrDuplicateVote      = errors.New("you have already voted")
	ErrInvalidDirection   = errors.New("vote direction must be up or down")
	ErrInvalidContentType = errors.New("content type must be question or answer")
	ErrInvalidTransition  = errors.New("status transition not permitted")
	ErrInvalidAction      = errors.New("invalid moderation action")
	ErrAlreadyResolved    = errors.New("report has already been resolved")
	ErrNotOwner           = errors.New("content belongs to another user")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")

	ErrCategoryExists = errors.New("category already exists")
	ErrCategoryInUse  = errors.New("category is in use by existing questions")
)

// CascadeError marks a multi-record deletion that did not complete. The
// remaining steps are idempotent deletes by id and safe to retry.
type CascadeError struct {
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade failed at %s: %v", e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
