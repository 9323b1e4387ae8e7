package service

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
)

// FriendRepository defines the interface for friend relation storage
type FriendRepository interface {
	Create(ctx context.Context, f model.Friendship) error
	Find(ctx context.Context, a, b string) (*model.Friendship, error)
	Accept(ctx context.Context, requester, requestee string) error
	Delete(ctx context.Context, requester, requestee string) error
	ListFriends(ctx context.Context, nickName string) ([]string, error)
	ListPending(ctx context.Context, nickName string) ([]string, error)
}

// FriendService handles friend requests between users
type FriendService struct {
	friends FriendRepository
	users   UserRepository
}

// NewFriendService creates a new friend service
func NewFriendService(friends FriendRepository, users UserRepository) *FriendService {
	return &FriendService{friends: friends, users: users}
}

// Friends lists caller's friends
func (s *FriendService) Friends(ctx context.Context, caller Caller) (model.Friends, error) {
	list, err := s.friends.ListFriends(ctx, caller.NickName)
	if err != nil {
		return model.Friends{}, err
	}
	if list == nil {
		list = []string{}
	}
	return model.Friends{FriendList: list}, nil
}

// Requests lists nicknames waiting for caller's answer
func (s *FriendService) Requests(ctx context.Context, caller Caller) (model.FriendRequests, error) {
	list, err := s.friends.ListPending(ctx, caller.NickName)
	if err != nil {
		return model.FriendRequests{}, err
	}
	if list == nil {
		list = []string{}
	}
	return model.FriendRequests{RequestFriendList: list}, nil
}

// Handle sends, permits or dismisses a friend request. For permit and dismiss
// the requestee name is the user who sent the pending request.
func (s *FriendService) Handle(ctx context.Context, caller Caller, req model.FriendRequest) error {
	other := strings.TrimSpace(req.RequesteeName)

	switch req.RequestRole {
	case model.RoleRequest:
		return s.send(ctx, caller, other)
	case model.RolePermit:
		return s.permit(ctx, caller, other)
	case model.RoleDismiss:
		return s.dismiss(ctx, caller, other)
	default:
		return ErrInvalidRequestRole
	}
}

func (s *FriendService) send(ctx context.Context, caller Caller, other string) error {
	if other == caller.NickName {
		return ErrCannotFriendSelf
	}
	user, err := s.users.GetByNickName(ctx, other)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	existing, err := s.friends.Find(ctx, caller.NickName, other)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Status == model.FriendshipAccepted {
			return ErrAlreadyFriends
		}
		return ErrAlreadyRequested
	}

	err = s.friends.Create(ctx, model.Friendship{
		Requester: caller.NickName,
		Requestee: other,
		Status:    model.FriendshipPending,
	})
	if errors.Is(err, database.ErrDuplicate) {
		return ErrAlreadyRequested
	}
	return err
}

func (s *FriendService) permit(ctx context.Context, caller Caller, requester string) error {
	err := s.friends.Accept(ctx, requester, caller.NickName)
	if errors.Is(err, database.ErrNotFound) {
		return ErrFriendRequestNotFound
	}
	return err
}

func (s *FriendService) dismiss(ctx context.Context, caller Caller, requester string) error {
	existing, err := s.friends.Find(ctx, requester, caller.NickName)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status != model.FriendshipPending || existing.Requester != requester {
		return ErrFriendRequestNotFound
	}
	return s.friends.Delete(ctx, requester, caller.NickName)
}
