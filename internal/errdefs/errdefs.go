package errdefs

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	// ErrTypeValidation covers problems detected locally before any network
	// traffic: empty editor text, bad file extension, oversized file.
	ErrTypeValidation ErrorType = iota
	// ErrTypeRemote covers non-success responses from a pipeline stage whose
	// message was extracted from the response body.
	ErrTypeRemote
	// ErrTypeUnexpected covers network failures and malformed responses.
	ErrTypeUnexpected
	ErrTypeGeneric
)

type CustomError struct {
	Type    ErrorType
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func NewCustomError(errType ErrorType, message string) error {
	return &CustomError{
		Type:    errType,
		Message: message,
	}
}

func Validationf(format string, args ...interface{}) error {
	return NewCustomError(ErrTypeValidation, fmt.Sprintf(format, args...))
}

func Remote(message string) error {
	return NewCustomError(ErrTypeRemote, message)
}

func Unexpected(message string) error {
	return NewCustomError(ErrTypeUnexpected, message)
}

// TypeOf classifies an arbitrary error; anything that is not a CustomError
// counts as unexpected.
func TypeOf(err error) ErrorType {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ErrTypeUnexpected
}

func IsValidation(err error) bool {
	return err != nil && TypeOf(err) == ErrTypeValidation
}

func IsRemote(err error) bool {
	return err != nil && TypeOf(err) == ErrTypeRemote
}
