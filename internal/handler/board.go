package handler

import (
	"net/http"
	"strings"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// BoardHandler handles notice board endpoints
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// List handles GET /boards?dou=&si=&gu=&offset=&limit=
//
// The body is an object keyed by absolute list position, in position order.
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit, problem := window(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	q := r.URL.Query()
	page, err := h.boardService.List(r.Context(), model.BoardFilter{
		Address: model.Address{
			Dou: strings.TrimSpace(q.Get("dou")),
			Si:  strings.TrimSpace(q.Get("si")),
			Gu:  strings.TrimSpace(q.Get("gu")),
		},
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeServiceError(w, r, err, "list boards")
		return
	}

	WriteJSON(w, http.StatusOK, page)
}

// Get handles GET /boards/{id}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, problem := pathID(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	notice, err := h.boardService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get board")
		return
	}

	WriteJSON(w, http.StatusOK, notice)
}

// Create handles POST /boards
func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req model.CreateNoticeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	notice, err := h.boardService.Create(r.Context(), c, req)
	if err != nil {
		writeServiceError(w, r, err, "create board")
		return
	}

	WriteJSON(w, http.StatusCreated, notice)
}

// Delete handles DELETE /boards/{id}
func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, problem := pathID(r, "id")
	if problem != nil {
		WriteError(w, problem)
		return
	}

	if err := h.boardService.Delete(r.Context(), c, id); err != nil {
		writeServiceError(w, r, err, "delete board")
		return
	}

	WriteNoContent(w)
}
