package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode is the application code carried next to the HTTP status
type ErrorCode int

const (
	// 1xxx authentication
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeLoginFailed  ErrorCode = 1004

	// 2xxx authorization
	ErrCodeForbidden ErrorCode = 2001
	ErrCodeNotLeader ErrorCode = 2002

	// 3xxx resources
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeConflict      ErrorCode = 3003

	// 4xxx input
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002

	// 5xxx server
	ErrCodeInternal ErrorCode = 5001
)

const problemTypeBase = "https://api.runningmate.dev/errors/"

// ProblemDetails is an RFC 9457 error body
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Code     ErrorCode    `json:"code,omitempty"`
}

// FieldError names one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WithCode replaces the application code and returns p
func (p *ProblemDetails) WithCode(code ErrorCode) *ProblemDetails {
	p.Code = code
	return p
}

// WriteJSON writes p as application/problem+json with its status
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(status int, slug string, code ErrorCode, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + slug,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

func NewUnauthorizedError(detail string) *ProblemDetails {
	return newProblem(http.StatusUnauthorized, "unauthorized", ErrCodeUnauthorized, detail)
}

func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem(http.StatusForbidden, "forbidden", ErrCodeForbidden, detail)
}

// NewNotFoundError reports that resource does not exist
func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem(http.StatusNotFound, "not-found", ErrCodeNotFound, resource+" not found")
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem(http.StatusConflict, "conflict", ErrCodeConflict, detail)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem(http.StatusBadRequest, "bad-request", ErrCodeInvalidInput, detail)
}

// NewInternalError hides the cause behind a generic detail unless one is given
func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem(http.StatusInternalServerError, "internal", ErrCodeInternal, detail)
}

// NewValidationError is a 422 listing every rejected field. The detail
// summarizes the first one.
func NewValidationError(fields []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	switch len(fields) {
	case 0:
	case 1:
		detail = fields[0].Field + ": " + fields[0].Message
	default:
		detail = fmt.Sprintf("%s: %s (and %d more errors)", fields[0].Field, fields[0].Message, len(fields)-1)
	}
	pd := newProblem(http.StatusUnprocessableEntity, "validation", ErrCodeValidation, detail)
	pd.Title = "Validation Error"
	pd.Errors = fields
	return pd
}
