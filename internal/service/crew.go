package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
	"github.com/samber/lo"
)

// Default page size for crew listings
const defaultCrewsPageSize = 20

// CrewRepository defines the interface for crew storage
type CrewRepository interface {
	Create(ctx context.Context, crew *model.Crew) error
	GetByID(ctx context.Context, id int64) (*model.Crew, error)
	GetByName(ctx context.Context, name string) (*model.Crew, error)
	List(ctx context.Context, offset, limit int) ([]*model.Crew, error)
	AddRequest(ctx context.Context, crewID int64, user model.UserDto) error
	RemoveRequest(ctx context.Context, crewID, userID int64) error
	Admit(ctx context.Context, crewID int64, user model.UserDto) error
}

// CrewService handles crews and their join requests
type CrewService struct {
	repo CrewRepository
}

// NewCrewService creates a new crew service
func NewCrewService(repo CrewRepository) *CrewService {
	return &CrewService{repo: repo}
}

// List returns crew summaries in creation order
func (s *CrewService) List(ctx context.Context, offset, limit int) ([]model.CrewSummary, error) {
	offset, limit = clampPage(offset, limit, defaultCrewsPageSize, model.MaxCrewsPageSize)
	crews, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(crews, func(c *model.Crew, _ int) model.CrewSummary { return c.Summary() }), nil
}

// Get returns a crew with its members and pending requesters
func (s *CrewService) Get(ctx context.Context, id int64) (*model.Crew, error) {
	crew, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, ErrCrewNotFound
	}
	return crew, nil
}

// Create founds a crew led by caller, who becomes its first member
func (s *CrewService) Create(ctx context.Context, caller Caller, req model.CreateCrewRequest) (*model.Crew, error) {
	name := strings.TrimSpace(req.CrewName)
	if name == "" {
		return nil, ErrCrewNameRequired
	}
	if utf8.RuneCountInString(name) > model.MaxCrewNameLength {
		return nil, ErrCrewNameTooLong
	}

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCrewNameExists
	}

	crew := &model.Crew{
		CrewLeaderID: caller.ID,
		CrewRegion:   strings.TrimSpace(req.CrewRegion),
		OpenChat:     req.OpenChat,
		CrewName:     name,
		Explanation:  req.Explanation,
		UserDtos:     []model.UserDto{caller.Dto()},
		RequestUsers: []model.UserDto{},
	}
	if err := s.repo.Create(ctx, crew); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrCrewNameExists
		}
		return nil, err
	}
	return crew, nil
}

// RequestJoin asks the crew leader to admit caller
func (s *CrewService) RequestJoin(ctx context.Context, caller Caller, crewID int64) error {
	crew, err := s.Get(ctx, crewID)
	if err != nil {
		return err
	}
	if crew.HasMember(caller.NickName) {
		return ErrAlreadyCrewMember
	}
	if crew.HasRequest(caller.NickName) {
		return ErrAlreadyRequested
	}
	return s.repo.AddRequest(ctx, crewID, caller.Dto())
}

// ManageRequest lets the crew leader permit or dismiss a pending join request
func (s *CrewService) ManageRequest(ctx context.Context, caller Caller, crewID int64, req model.ManageJoinRequest) error {
	if !req.RequestRole.IsDecision() {
		return ErrInvalidRequestRole
	}

	crew, err := s.Get(ctx, crewID)
	if err != nil {
		return err
	}
	if crew.CrewLeaderID != caller.ID {
		return ErrNotCrewLeader
	}

	requester, ok := lo.Find(crew.RequestUsers, func(u model.UserDto) bool { return u.NickName == req.NickName })
	if !ok {
		return ErrJoinRequestNotFound
	}

	if req.RequestRole == model.RolePermit {
		return s.repo.Admit(ctx, crewID, requester)
	}
	return s.repo.RemoveRequest(ctx, crewID, requester.ID)
}
