package handler

import (
	"net/http"

	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/service"
)

// FriendHandler handles friend endpoints
type FriendHandler struct {
	friendService *service.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// List handles GET /friends
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	friends, err := h.friendService.Friends(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err, "list friends")
		return
	}

	WriteJSON(w, http.StatusOK, friends)
}

// Requests handles GET /friends/requests
func (h *FriendHandler) Requests(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	pending, err := h.friendService.Requests(r.Context(), c)
	if err != nil {
		writeServiceError(w, r, err, "list friend requests")
		return
	}

	WriteJSON(w, http.StatusOK, pending)
}

// Handle handles POST /friends, which sends, permits or dismisses a request
func (h *FriendHandler) Handle(w http.ResponseWriter, r *http.Request) {
	c, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req model.FriendRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.friendService.Handle(r.Context(), c, req); err != nil {
		writeServiceError(w, r, err, "friend request")
		return
	}

	WriteNoContent(w)
}
