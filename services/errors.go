package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error returned by a service matches exactly one of these
// with errors.Is.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrConflict    = errors.New("resource already exists")
	ErrValidation  = errors.New("validation error")
	ErrPersistence = errors.New("persistence error")
)

// ServiceError is a domain error with a caller-facing message that unwraps to its kind
type ServiceError struct {
	kind error
	msg  string
}

func (e *ServiceError) Error() string { return e.msg }

func (e *ServiceError) Unwrap() error { return e.kind }

func newError(kind error, msg string) *ServiceError {
	return &ServiceError{kind: kind, msg: msg}
}

var (
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrProjectNotFound    = newError(ErrNotFound, "project not found")
	ErrTaskNotFound       = newError(ErrNotFound, "task not found")
	ErrTagNotFound        = newError(ErrNotFound, "tag not found")
	ErrAssignmentNotFound = newError(ErrNotFound, "assignment not found")
	ErrCommentNotFound    = newError(ErrNotFound, "comment not found")
	ErrTagOrTaskNotFound  = newError(ErrNotFound, "tag or task not found")

	ErrEmailTaken      = newError(ErrConflict, "email already registered")
	ErrUsernameTaken   = newError(ErrConflict, "username already taken")
	ErrTagNameTaken    = newError(ErrConflict, "tag name already exists")
	ErrAlreadyAssigned = newError(ErrConflict, "user already assigned to task")
	ErrDuplicate       = newError(ErrConflict, "resource already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

func validationError(err error) error {
	return newError(ErrValidation, err.Error())
}

// persistenceError classifies a store error. Errors that already carry a kind
// pass through, duplicate keys the store caught become ErrDuplicate and
// everything else is wrapped as ErrPersistence.
func persistenceError(err error) error {
	if err == nil {
		return nil
	}
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// lookupError maps gorm.ErrRecordNotFound to notFound
func lookupError(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return persistenceError(err)
}
