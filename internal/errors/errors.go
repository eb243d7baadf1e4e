package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUnknownLesson      = "UNKNOWN_LESSON"
	ErrCodeUnknownQuestion    = "UNKNOWN_QUESTION"
	ErrCodeUnknownAchievement = "UNKNOWN_ACHIEVEMENT"
	ErrCodeSessionTerminal    = "SESSION_ALREADY_TERMINAL"
	ErrCodeStaleQuestion      = "STALE_QUESTION"
	ErrCodeNoSession          = "NO_SESSION"
	ErrCodeInvalidResponse    = "INVALID_RESPONSE"
	ErrCodeLessonLocked       = "LESSON_LOCKED"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// Kinds, matched with errors.Is against any AppError of that kind.
var (
	ErrUnknownLesson      = stderrors.New("unknown lesson")
	ErrUnknownQuestion    = stderrors.New("unknown question")
	ErrUnknownAchievement = stderrors.New("unknown achievement")
	ErrSessionTerminal    = stderrors.New("session already terminal")
	ErrStaleQuestion      = stderrors.New("stale question")
	ErrNoSession          = stderrors.New("no session")
	ErrInvalidResponse    = stderrors.New("invalid response")
	ErrLessonLocked       = stderrors.New("lesson locked")
	ErrValidation         = stderrors.New("validation failed")
	ErrInternal           = stderrors.New("internal error")
)

// AppError represents an application error with a stable code and kind
type AppError struct {
	Code    string // Error code (e.g., "UNKNOWN_LESSON")
	Message string // Human-readable error message
	Kind    error  // One of the Err* kinds above
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind.
func (e *AppError) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is errors.Is re-exported so callers need not import both packages.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func NewUnknownLessonError(lessonID string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownLesson,
		Message: fmt.Sprintf("lesson not found: %s", lessonID),
		Kind:    ErrUnknownLesson,
	}
}

func NewUnknownTrackError(code string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownLesson,
		Message: fmt.Sprintf("track not found: %s", code),
		Kind:    ErrUnknownLesson,
	}
}

func NewUnknownQuestionError(lessonID string, index int) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownQuestion,
		Message: fmt.Sprintf("lesson %s has no question at index %d", lessonID, index),
		Kind:    ErrUnknownQuestion,
	}
}

func NewUnknownAchievementError(id string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownAchievement,
		Message: fmt.Sprintf("achievement not found: %s", id),
		Kind:    ErrUnknownAchievement,
	}
}

func NewSessionTerminalError(lessonID string, state string) *AppError {
	return &AppError{
		Code:    ErrCodeSessionTerminal,
		Message: fmt.Sprintf("session for lesson %s is already %s", lessonID, state),
		Kind:    ErrSessionTerminal,
	}
}

func NewStaleQuestionError(lessonID string, got, current int) *AppError {
	return &AppError{
		Code:    ErrCodeStaleQuestion,
		Message: fmt.Sprintf("lesson %s: answered question %d but current question is %d", lessonID, got, current),
		Kind:    ErrStaleQuestion,
	}
}

func NewNoSessionError(lessonID string) *AppError {
	return &AppError{
		Code:    ErrCodeNoSession,
		Message: fmt.Sprintf("no session started for lesson %s", lessonID),
		Kind:    ErrNoSession,
	}
}

func NewInvalidResponseError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidResponse,
		Message: reason,
		Kind:    ErrInvalidResponse,
	}
}

func NewLessonLockedError(lessonID string) *AppError {
	return &AppError{
		Code:    ErrCodeLessonLocked,
		Message: fmt.Sprintf("lesson %s is locked until the previous lesson is completed", lessonID),
		Kind:    ErrLessonLocked,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Kind:    ErrValidation,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Kind:    ErrInternal,
		Err:     err,
	}
}
