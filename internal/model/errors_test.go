package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// Error() Interface Tests
// ============================================================================

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "crew not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "crew not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

// ============================================================================
// WriteJSON Tests
// ============================================================================

func TestProblemDetails_WriteJSON_SetsHeadersAndBody(t *testing.T) {
	t.Parallel()

	pd := NewBadRequestError("invalid input")
	rr := httptest.NewRecorder()

	pd.WriteJSON(rr)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected Content-Type 'application/problem+json', got %q", ct)
	}

	var result ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if result.Detail != "invalid input" {
		t.Errorf("expected detail 'invalid input', got %q", result.Detail)
	}
}

// ============================================================================
// Constructor Tests
// ============================================================================

func TestConstructors_ReturnExpectedStatusAndType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pd       *ProblemDetails
		status   int
		typeFrag string
	}{
		{"unauthorized", NewUnauthorizedError("x"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", NewForbiddenError("x"), http.StatusForbidden, "forbidden"},
		{"not found", NewNotFoundError("board"), http.StatusNotFound, "not-found"},
		{"conflict", NewConflictError("x"), http.StatusConflict, "conflict"},
		{"internal", NewInternalError(""), http.StatusInternalServerError, "internal"},
		{"bad request", NewBadRequestError("x"), http.StatusBadRequest, "bad-request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pd.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.pd.Status)
			}
			if !strings.HasSuffix(tt.pd.Type, tt.typeFrag) {
				t.Errorf("expected type to end with %q, got %q", tt.typeFrag, tt.pd.Type)
			}
		})
	}
}

func TestWithCode_ReplacesCode(t *testing.T) {
	t.Parallel()

	pd := NewForbiddenError("x").WithCode(ErrCodeNotLeader)
	if pd.Code != ErrCodeNotLeader || pd.Status != http.StatusForbidden {
		t.Errorf("unexpected problem %+v", pd)
	}
	if pd.Title != "Forbidden" {
		t.Errorf("expected title from status text, got %q", pd.Title)
	}
}

func TestNewValidationError_SingleField(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{{Field: "title", Message: "required"}})
	if pd.Detail != "title: required" || pd.Status != http.StatusUnprocessableEntity {
		t.Errorf("unexpected problem %+v", pd)
	}
}

func TestNewNotFoundError_FormatsResourceName(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("board")
	if pd.Detail != "board not found" {
		t.Errorf("expected detail 'board not found', got %q", pd.Detail)
	}
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "crewName", Message: "required"},
		{Field: "crewRegion", Message: "required"},
	})

	if pd.Detail != "crewName: required (and 1 more errors)" {
		t.Errorf("unexpected detail %q", pd.Detail)
	}
	if len(pd.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(pd.Errors))
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("")
	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("expected default detail, got %q", pd.Detail)
	}
}

func TestProblemDetails_JSON_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(&ProblemDetails{Type: "test", Title: "Test", Status: 400})
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	jsonStr := string(data)
	for _, field := range []string{"detail", "instance", "errors", "code"} {
		if strings.Contains(jsonStr, field) {
			t.Errorf("empty %s should be omitted from JSON: %s", field, jsonStr)
		}
	}
}
