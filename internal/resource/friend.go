package resource

import (
	"context"
	"net/http"

	"github.com/forgo/runningmate/internal/model"
)

// FriendIntent is a friend request action on behalf of the token holder
type FriendIntent struct {
	Token         model.Token
	RequesteeName string
	Role          model.RequestRole
}

// FriendService talks to /friends
type FriendService struct {
	client *Client
}

// NewFriendService creates a friend service
func NewFriendService(client *Client) *FriendService {
	return &FriendService{client: client}
}

// GetRequestFriends lists nicknames waiting for the caller's answer
func (s *FriendService) GetRequestFriends(ctx context.Context, token model.Token) (model.FriendRequests, error) {
	var out model.FriendRequests
	if err := s.client.do(ctx, call{method: http.MethodGet, path: "/friends/requests", token: token}, &out); err != nil {
		return model.FriendRequests{RequestFriendList: []string{}}, s.client.fail(ctx, "get friend requests", ErrFetchFailed, err)
	}
	if out.RequestFriendList == nil {
		out.RequestFriendList = []string{}
	}
	return out, nil
}

// GetFriends lists the caller's friends
func (s *FriendService) GetFriends(ctx context.Context, token model.Token) (model.Friends, error) {
	var out model.Friends
	if err := s.client.do(ctx, call{method: http.MethodGet, path: "/friends", token: token}, &out); err != nil {
		return model.Friends{FriendList: []string{}}, s.client.fail(ctx, "get friends", ErrFetchFailed, err)
	}
	if out.FriendList == nil {
		out.FriendList = []string{}
	}
	return out, nil
}

// RequestFriend sends, permits or dismisses a friend request
func (s *FriendService) RequestFriend(ctx context.Context, in FriendIntent) error {
	body := model.FriendRequest{RequesteeName: in.RequesteeName, RequestRole: in.Role}
	if err := s.client.do(ctx, call{method: http.MethodPost, path: "/friends", token: in.Token, body: body}, nil); err != nil {
		return s.client.fail(ctx, "request friend", ErrUpdateFailed, err)
	}
	return nil
}
