package util

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrSchoolNotFound         = errors.New("school not found")
	ErrStudentNotFound        = errors.New("student not found")
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentNotPublished = errors.New("assessment not published")
	ErrAssessmentEmpty        = errors.New("assessment has no questions")
	ErrSubmissionNotFound     = errors.New("submission not found")

	// ErrDuplicateSubmission means a submission already exists for this
	// (student, assessment) pair. Treated as a hard conflict, never as an
	// idempotent success.
	ErrDuplicateSubmission = errors.New("assessment already submitted")

	// ErrPersistence wraps storage failures during the submission write.
	// The core never retries these; retry policy belongs to the caller.
	ErrPersistence = errors.New("failed to save submission")

	// ErrBadThresholds means the bucket threshold table is misconfigured.
	// This is a boot-time configuration bug, not a runtime condition.
	ErrBadThresholds = errors.New("invalid bucket threshold configuration")

	// ErrIDSpaceExhausted means the bounded generation loop ran out of
	// attempts without finding a free identifier.
	ErrIDSpaceExhausted = errors.New("could not generate a unique identifier")
)

// ValidationError rejects a raw answer set, naming the offending question
// index so the client can render a specific message. Index -1 means the
// problem is with the answer set as a whole rather than one entry.
type ValidationError struct {
	QuestionIndex int
	Reason        string
}

func (e *ValidationError) Error() string {
	if e.QuestionIndex < 0 {
		return fmt.Sprintf("invalid answer set: %s", e.Reason)
	}
	return fmt.Sprintf("invalid answer for question %d: %s", e.QuestionIndex, e.Reason)
}

// NewValidationError builds a per-question validation failure.
func NewValidationError(index int, format string, args ...interface{}) *ValidationError {
	return &ValidationError{QuestionIndex: index, Reason: fmt.Sprintf(format, args...)}
}
