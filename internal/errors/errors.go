package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidRecord is returned when a record cannot be indexed
	ErrInvalidRecord = errors.New("invalid record")

	// ErrWardNotFound is returned when a ward is not found
	ErrWardNotFound = errors.New("ward not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoRecords is returned when an operation needs at least one record
	ErrNoRecords = errors.New("no data to export")

	// ErrInvalidDataset is returned when a dataset file cannot be parsed
	ErrInvalidDataset = errors.New("invalid dataset")
)

// InvalidRecordError represents a malformed record found while building an index
type InvalidRecordError struct {
	Position int // zero-based position of the record in the input
	RecordID string
	Field    string
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	if e.RecordID != "" {
		return fmt.Sprintf("invalid record '%s' at position %d: field '%s' %s", e.RecordID, e.Position, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid record at position %d: field '%s' %s", e.Position, e.Field, e.Reason)
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// NewInvalidRecordError creates a new InvalidRecordError
func NewInvalidRecordError(position int, recordID, field, reason string) *InvalidRecordError {
	return &InvalidRecordError{Position: position, RecordID: recordID, Field: field, Reason: reason}
}

// WardNotFoundError represents a ward not found error with context
type WardNotFoundError struct {
	Ward string
}

func (e *WardNotFoundError) Error() string {
	return fmt.Sprintf("ward '%s' not found", e.Ward)
}

func (e *WardNotFoundError) Is(target error) bool {
	return target == ErrWardNotFound
}

// NewWardNotFoundError creates a new WardNotFoundError
func NewWardNotFoundError(ward string) *WardNotFoundError {
	return &WardNotFoundError{Ward: ward}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DatasetError represents a dataset that could not be read or parsed
type DatasetError struct {
	Source string
	Err    error
}

func (e *DatasetError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid dataset '%s': %v", e.Source, e.Err)
	}
	return fmt.Sprintf("invalid dataset: %v", e.Err)
}

func (e *DatasetError) Is(target error) bool {
	return target == ErrInvalidDataset
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// NewDatasetError creates a new DatasetError
func NewDatasetError(source string, err error) *DatasetError {
	return &DatasetError{Source: source, Err: err}
}
