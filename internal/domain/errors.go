package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session is unknown or expired.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionEnded is returned when an answer arrives after the session is over.
	ErrSessionEnded = errors.New("game session has ended")
	// ErrSessionActive is returned when a score is saved before the session ended.
	ErrSessionActive = errors.New("game session is still in progress")
	// ErrAnswerRevealed is returned when a second answer is sent for the same round.
	ErrAnswerRevealed = errors.New("answer already revealed for this round")
	// ErrNotRevealed is returned when advancing before the round was answered.
	ErrNotRevealed = errors.New("round has not been answered yet")
	// ErrNoBrands indicates the catalog returned nothing to play with.
	ErrNoBrands = errors.New("no brands available")
	// ErrDuplicateSlug indicates a brand with the same slug is already stored.
	ErrDuplicateSlug = errors.New("brand slug already exists")
)

// ValidationError describes the first constraint a request violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
