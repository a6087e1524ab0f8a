package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("bank not found")
	ErrInvalidInput  = errors.New("invalid input provided")
	ErrAlreadyExists = errors.New("swift code already exists")
)

// MissingFieldError reports a required field that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidSwiftCodeError reports a SWIFT code that is not 8 or 11 alphanumerics.
type InvalidSwiftCodeError struct {
	Code string
}

func (e *InvalidSwiftCodeError) Error() string {
	return fmt.Sprintf("invalid SWIFT code format: %s", e.Code)
}

func (e *InvalidSwiftCodeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// DuplicateSwiftCodeError reports a SWIFT code already held by another bank.
type DuplicateSwiftCodeError struct {
	Code string
}

func (e *DuplicateSwiftCodeError) Error() string {
	return fmt.Sprintf("bank with SWIFT code %s already exists", e.Code)
}

func (e *DuplicateSwiftCodeError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NotFoundError reports a bank id with no record.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bank not found with id: %s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
