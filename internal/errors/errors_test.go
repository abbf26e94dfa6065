package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestInvalidRecordError(t *testing.T) {
	err := NewInvalidRecordError(3, "1-female-4", "voter_no", "is required")

	expectedMsg := "invalid record '1-female-4' at position 3: field 'voter_no' is required"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test Is() method
	if !errors.Is(err, ErrInvalidRecord) {
		t.Error("Expected error to match ErrInvalidRecord sentinel")
	}

	// Test that it doesn't match other sentinels
	if errors.Is(err, ErrInvalidInput) {
		t.Error("Error should not match ErrInvalidInput")
	}

	// Without an ID
	err2 := NewInvalidRecordError(0, "", "id", "is required")
	expectedMsg2 := "invalid record at position 0: field 'id' is required"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}
}

func TestWardNotFoundError(t *testing.T) {
	err := NewWardNotFoundError("7")

	expectedMsg := "ward '7' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrWardNotFound) {
		t.Error("Expected error to match ErrWardNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	// Test with field
	err := NewValidationError("gender", "must be one of all, female, male")

	expectedMsg := "validation error for field 'gender': must be one of all, female, male"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	// Test without field
	err2 := NewValidationError("", "general validation error")

	expectedMsg2 := "validation error: general validation error"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestDatasetError(t *testing.T) {
	err := NewDatasetError("voters.json", io.ErrUnexpectedEOF)

	expectedMsg := "invalid dataset 'voters.json': unexpected EOF"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrInvalidDataset) {
		t.Error("Expected error to match ErrInvalidDataset sentinel")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("Expected error to unwrap to the cause")
	}
}

func TestWrappedErrors(t *testing.T) {
	originalErr := NewWardNotFoundError("12")
	wrappedErr := fmt.Errorf("failed to search: %w", originalErr)

	if !errors.Is(wrappedErr, ErrWardNotFound) {
		t.Error("Expected wrapped error to match ErrWardNotFound sentinel")
	}

	var wardErr *WardNotFoundError
	if !errors.As(wrappedErr, &wardErr) {
		t.Error("Expected to extract WardNotFoundError from wrapped error")
	}
	if wardErr.Ward != "12" {
		t.Errorf("Expected ward '12', got '%s'", wardErr.Ward)
	}
}
