package screen

import (
	"context"

	"github.com/forgo/runningmate/internal/binding"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/store"
)

// FriendList is the page listing the user's friends
type FriendList struct {
	deps    Deps
	friends *store.Slice[model.FriendState]
	api     FriendAPI
	bind    *binding.Binding[model.FriendState]
}

// NewFriendList creates the page
func NewFriendList(deps Deps, friends *store.Slice[model.FriendState], api FriendAPI) *FriendList {
	p := &FriendList{deps: deps, friends: friends, api: api}
	p.bind = binding.New(friends, binding.Handlers[model.FriendState]{},
		deps.bindingOptions(binding.WithFailureToast(friendLoadFailedToast))...)
	return p
}

// Mount starts watching and loads the friend list
func (p *FriendList) Mount(ctx context.Context) *dispatch.Handle {
	p.bind.Start(ctx)
	return p.Load(ctx)
}

// Unmount stops watching
func (p *FriendList) Unmount() {
	p.bind.Stop()
}

// Load fetches the friend list into the slice
func (p *FriendList) Load(ctx context.Context) *dispatch.Handle {
	token := p.deps.token()
	return dispatch.Dispatch(ctx, p.deps.Runner, p.friends, dispatch.Intent[model.FriendState]{
		Name: "get friends",
		Do: func(ctx context.Context) (store.Merge[model.FriendState], error) {
			out, err := p.api.GetFriends(ctx, token)
			if err != nil {
				return nil, err
			}
			return func(s store.Snapshot[model.FriendState]) store.Snapshot[model.FriendState] {
				data := s.Data
				data.FriendList = out.FriendList
				return s.WithData(data)
			}, nil
		},
	})
}

// Friends returns the loaded nicknames
func (p *FriendList) Friends() []string {
	return append([]string{}, p.friends.Snapshot().Data.FriendList...)
}

// Loading reports whether the list is being fetched
func (p *FriendList) Loading() bool {
	return p.friends.Status() == store.Pending
}

// GoRequests navigates to the pending requests page
func (p *FriendList) GoRequests() {
	p.deps.navigate(route.FriendRequestsPath)
}
