package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/forgo/runningmate/internal/middleware"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// WriteJSON writes data as the raw JSON body with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the named path value as a positive record id
func pathID(r *http.Request, name string) (int64, *model.ProblemDetails) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewValidationError([]model.FieldError{{Field: name, Message: "must be a positive integer"}})
	}
	return id, nil
}

// queryInt reads an optional non-negative integer query parameter
func queryInt(r *http.Request, name string) (int, *model.FieldError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &model.FieldError{Field: name, Message: fmt.Sprintf("%s must be a non-negative integer", name)}
	}
	return n, nil
}

// window reads the offset and limit query parameters
func window(r *http.Request) (offset, limit int, problem *model.ProblemDetails) {
	var errs []model.FieldError
	offset, fe := queryInt(r, "offset")
	if fe != nil {
		errs = append(errs, *fe)
	}
	limit, fe = queryInt(r, "limit")
	if fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return 0, 0, model.NewValidationError(errs)
	}
	return offset, limit, nil
}

// caller returns the authenticated user of r. Only valid behind middleware.Auth.
func caller(r *http.Request) (service.Caller, bool) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil || claims.UserID == 0 {
		return service.Caller{}, false
	}
	return service.Caller{ID: claims.UserID, NickName: claims.NickName}, true
}

// requireCaller writes a 401 and returns false when r carries no caller
func requireCaller(w http.ResponseWriter, r *http.Request) (service.Caller, bool) {
	c, ok := caller(r)
	if !ok {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
	}
	return c, ok
}
