package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lingualearn/internal/errors"
)

func TestAppError_IsMatchesKind(t *testing.T) {
	err := errors.NewUnknownLessonError("es-lesson-99")

	assert.True(t, stderrors.Is(err, errors.ErrUnknownLesson))
	assert.False(t, stderrors.Is(err, errors.ErrUnknownQuestion))
	assert.Contains(t, err.Error(), "UNKNOWN_LESSON")
	assert.Contains(t, err.Error(), "es-lesson-99")
}

func TestAppError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("submit: %w", errors.NewStaleQuestionError("fr-lesson-1", 2, 3))

	assert.True(t, errors.Is(err, errors.ErrStaleQuestion))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeStaleQuestion, appErr.Code)
}

func TestInternalError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := errors.NewInternalError(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, errors.ErrInternal))
	assert.Contains(t, err.Error(), "disk full")
}

func TestAs_PlainError(t *testing.T) {
	_, ok := errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}
