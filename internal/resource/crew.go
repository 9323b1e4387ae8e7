package resource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/forgo/runningmate/internal/model"
)

// NewCrew is the input to CreateCrew
type NewCrew = model.CreateCrewRequest

// CrewService talks to /crews
type CrewService struct {
	client *Client
}

// NewCrewService creates a crew service
func NewCrewService(client *Client) *CrewService {
	return &CrewService{client: client}
}

// ListCrews lists crews in the given window
func (s *CrewService) ListCrews(ctx context.Context, offset, limit int) ([]model.CrewSummary, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var out model.CrewList
	if err := s.client.do(ctx, call{method: http.MethodGet, path: "/crews", query: q}, &out); err != nil {
		return []model.CrewSummary{}, s.client.fail(ctx, "list crews", ErrFetchFailed, err)
	}
	if out.Crews == nil {
		return []model.CrewSummary{}, nil
	}
	return out.Crews, nil
}

// GetCrew fetches one crew with its members and join requesters
func (s *CrewService) GetCrew(ctx context.Context, id int64) (model.Crew, error) {
	var crew model.Crew
	if err := s.client.do(ctx, call{method: http.MethodGet, path: crewPath(id)}, &crew); err != nil {
		return model.Crew{}.Normalize(), s.client.fail(ctx, "get crew", ErrFetchFailed, err)
	}
	return crew.Normalize(), nil
}

// CreateCrew creates a crew led by the token holder
func (s *CrewService) CreateCrew(ctx context.Context, token model.Token, in NewCrew) (model.Crew, error) {
	var crew model.Crew
	if err := s.client.do(ctx, call{method: http.MethodPost, path: "/crews", token: token, body: in}, &crew); err != nil {
		return model.Crew{}.Normalize(), s.client.fail(ctx, "create crew", ErrCreateFailed, err)
	}
	return crew.Normalize(), nil
}

// RequestJoin asks to join a crew
func (s *CrewService) RequestJoin(ctx context.Context, token model.Token, crewID int64) error {
	if err := s.client.do(ctx, call{method: http.MethodPost, path: crewPath(crewID) + "/requests", token: token}, nil); err != nil {
		return s.client.fail(ctx, "request join", ErrCreateFailed, err)
	}
	return nil
}

// ManageJoinRequest permits or dismisses a pending join request. Only the crew
// leader may call it.
func (s *CrewService) ManageJoinRequest(ctx context.Context, token model.Token, crewID int64, nickName string, role model.RequestRole) error {
	body := model.ManageJoinRequest{NickName: nickName, RequestRole: role}
	if err := s.client.do(ctx, call{method: http.MethodPut, path: crewPath(crewID) + "/requests", token: token, body: body}, nil); err != nil {
		return s.client.fail(ctx, "manage join request", ErrUpdateFailed, err)
	}
	return nil
}

func crewPath(id int64) string {
	return "/crews/" + strconv.FormatInt(id, 10)
}
