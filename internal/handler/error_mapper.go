package handler

import (
	"errors"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Every handler goes through it so status codes stay consistent.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error()).WithCode(model.ErrCodeLoginFailed)

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotBoardAuthor):
		return model.NewForbiddenError(err.Error())
	case errors.Is(err, service.ErrNotCrewLeader):
		return model.NewForbiddenError(err.Error()).WithCode(model.ErrCodeNotLeader)

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrBoardNotFound):
		return model.NewNotFoundError("board")
	case errors.Is(err, service.ErrCrewNotFound):
		return model.NewNotFoundError("crew")
	case errors.Is(err, service.ErrJoinRequestNotFound):
		return model.NewNotFoundError("join request")
	case errors.Is(err, service.ErrFriendRequestNotFound):
		return model.NewNotFoundError("friend request")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrNickNameTaken),
		errors.Is(err, service.ErrCrewNameExists):
		return model.NewConflictError(err.Error()).WithCode(model.ErrCodeAlreadyExists)
	case errors.Is(err, service.ErrAlreadyCrewMember),
		errors.Is(err, service.ErrAlreadyRequested),
		errors.Is(err, service.ErrAlreadyFriends):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return fieldError("email", err)
	case errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return fieldError("password", err)
	case errors.Is(err, service.ErrNickNameRequired),
		errors.Is(err, service.ErrNickNameTooLong):
		return fieldError("nickName", err)

	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrTitleTooLong):
		return fieldError("title", err)
	case errors.Is(err, service.ErrInvalidMeetingTime):
		return fieldError("meetingTime", err)
	case errors.Is(err, service.ErrInvalidCategory):
		return fieldError("boardCategory", err)

	case errors.Is(err, service.ErrCrewNameRequired),
		errors.Is(err, service.ErrCrewNameTooLong):
		return fieldError("crewName", err)
	case errors.Is(err, service.ErrInvalidRequestRole):
		return fieldError("requestRole", err)
	case errors.Is(err, service.ErrCannotFriendSelf):
		return fieldError("requesteeName", err)

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext is MapServiceError with the failed operation named
// in the detail of unexpected errors
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}

func fieldError(field string, err error) *model.ProblemDetails {
	return model.NewValidationError([]model.FieldError{{Field: field, Message: err.Error()}})
}
