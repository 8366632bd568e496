package view

import (
	"github.com/pkg/errors"

	"github.com/bigredeye/studentmanager/pkg/client/students"
)

const (
	MessageFillAllFields  = "Please fill in all fields."
	MessageAgeNotNumber   = "Age must be a number."
	MessageLoadFailed     = "Failed to load students"
	MessageRequestFailed  = "Request failed"
	MessageDeleteFailed   = "Failed to delete student"
	MessageStudentAdded   = "Student added successfully"
	MessageStudentUpdated = "Student updated successfully"
	MessageStudentDeleted = "Student deleted successfully"

	ConfirmDeletePrompt = "Are you sure you want to delete this student?"
)

var ErrUnknownField = errors.New("Unknown form field")

// ValidationError is detected locally and never reaches the backend.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// bannerMessage picks the text shown to the user for a failed request.
func bannerMessage(err error, fallback string) string {
	var reqErr *students.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
