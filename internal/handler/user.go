package handler

import (
	"log/slog"
	"net/http"

	"github.com/forgo/runningmate/internal/middleware"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// UserHandler handles account endpoints
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// SignUp handles POST /users/signup
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	user, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "sign up")
		return
	}

	WriteJSON(w, http.StatusCreated, user.Dto())
}

// SignIn handles POST /users/signin
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	resp, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, "sign in")
		return
	}

	WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(r.Context(), c.ID)
	if err != nil {
		writeServiceError(w, r, err, "get user")
		return
	}

	WriteJSON(w, http.StatusOK, user.Dto())
}

// writeServiceError maps err and logs the ones that are not the caller's fault
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	pd := MapServiceErrorWithContext(err, op)
	if pd.Status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "unhandled service error",
			slog.String("op", op),
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
	}
	WriteError(w, pd)
}
