package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to cause")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("expected generic message, got %q", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "name is required")

	if err.Message != "name is required" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.StatusCode)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated")
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("remove: %w", WithMessage(ErrCategoryNotFound, "parent category not found"))

	if !stderrors.Is(err, ErrCategoryNotFound) {
		t.Error("expected errors.Is to match sentinel by code")
	}
	if stderrors.Is(err, ErrTagNotFound) {
		t.Error("expected different codes not to match")
	}
}

func TestAs(t *testing.T) {
	var err error = Wrap(ErrDuplicateCategoryName, nil)

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Fatal("expected *AppError")
	}
	if appErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", appErr.StatusCode)
	}
}
