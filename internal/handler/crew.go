package handler

import (
	"net/http"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// CrewHandler handles crew endpoints
type CrewHandler struct {
	crewService *service.CrewService
}

// NewCrewHandler creates a new crew handler
func NewCrewHandler(crewService *service.CrewService) *CrewHandler {
	return &CrewHandler{crewService: crewService}
}

// List handles GET /crews?offset=&limit=
func (h *CrewHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, problem := window(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	crews, err := h.crewService.List(r.Context(), offset, limit)
	if err != nil {
		writeServiceError(w, r, err, "list crews")
		return
	}

	WriteJSON(w, http.StatusOK, model.CrewList{Crews: crews})
}

// Get handles GET /crews/{id}
func (h *CrewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, problem := pathID(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	crew, err := h.crewService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get crew")
		return
	}

	WriteJSON(w, http.StatusOK, crew)
}

// Create handles POST /crews
func (h *CrewHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req model.CreateCrewRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	crew, err := h.crewService.Create(r.Context(), c, req)
	if err != nil {
		writeServiceError(w, r, err, "create crew")
		return
	}

	WriteJSON(w, http.StatusCreated, crew)
}

// RequestJoin handles POST /crews/{id}/requests
func (h *CrewHandler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, problem := pathID(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	if err := h.crewService.RequestJoin(r.Context(), c, id); err != nil {
		writeServiceError(w, r, err, "request join")
		return
	}

	WriteNoContent(w)
}

// ManageRequest handles PUT /crews/{id}/requests
func (h *CrewHandler) ManageRequest(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, problem := pathID(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	var req model.ManageJoinRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.crewService.ManageRequest(r.Context(), c, id, req); err != nil {
		writeServiceError(w, r, err, "manage join request")
		return
	}

	WriteNoContent(w)
}
