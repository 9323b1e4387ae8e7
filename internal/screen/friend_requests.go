package screen

import (
	"context"
	"sync"

	"github.com/forgo/runningmate/internal/binding"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/resource"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/store"
)

// Toast shown when the pending friend requests cannot be loaded
var friendLoadFailedToast = notify.Error("친구 정보 불러오기 실패.", "친구 정보를 불러오는데 실패하였습니다.")

// FriendRequests is the page answering pending friend requests.
//
// The request list is local to the page and refetched on mount and after every
// answer. Loading stays on until the refetch settles.
type FriendRequests struct {
	deps    Deps
	friends *store.Slice[model.FriendState]
	api     FriendAPI
	bind    *binding.Binding[model.FriendState]

	mu       sync.Mutex
	requests []string
	loading  int
	wg       sync.WaitGroup
}

// NewFriendRequests creates the page
func NewFriendRequests(deps Deps, friends *store.Slice[model.FriendState], api FriendAPI) *FriendRequests {
	p := &FriendRequests{
		deps:     deps,
		friends:  friends,
		api:      api,
		requests: []string{},
	}
	p.bind = binding.New(friends, binding.Handlers[model.FriendState]{}, deps.bindingOptions()...)
	return p
}

// Mount starts watching the friend slice and loads the request list
func (p *FriendRequests) Mount(ctx context.Context) {
	p.bind.Start(ctx)
	p.refetch(ctx, nil)
}

// Unmount stops watching and waits for background loads
func (p *FriendRequests) Unmount() {
	p.bind.Stop()
	p.wg.Wait()
}

// Wait blocks until every background load has settled
func (p *FriendRequests) Wait() {
	p.wg.Wait()
}

// Permit accepts the request from nickName
func (p *FriendRequests) Permit(ctx context.Context, nickName string) *dispatch.Handle {
	return p.answer(ctx, nickName, model.RolePermit)
}

// Dismiss rejects the request from nickName
func (p *FriendRequests) Dismiss(ctx context.Context, nickName string) *dispatch.Handle {
	return p.answer(ctx, nickName, model.RoleDismiss)
}

func (p *FriendRequests) answer(ctx context.Context, nickName string, role model.RequestRole) *dispatch.Handle {
	token := p.deps.token()
	h := dispatch.Dispatch(ctx, p.deps.Runner, p.friends, dispatch.Intent[model.FriendState]{
		Name: "request friend " + string(role),
		Do: func(ctx context.Context) (store.Merge[model.FriendState], error) {
			return nil, p.api.RequestFriend(ctx, resource.FriendIntent{
				Token:         token,
				RequesteeName: nickName,
				Role:          role,
			})
		},
	})
	p.refetch(ctx, h)
	return h
}

// refetch reloads the request list after after settles, if given
func (p *FriendRequests) refetch(ctx context.Context, after *dispatch.Handle) {
	p.mu.Lock()
	p.loading++
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.loading--
			p.mu.Unlock()
		}()

		if after != nil {
			after.Wait()
		}
		out, err := p.api.GetRequestFriends(ctx, p.deps.token())
		if err != nil {
			p.deps.notify(ctx, friendLoadFailedToast)
			return
		}
		p.mu.Lock()
		p.requests = out.RequestFriendList
		p.mu.Unlock()
		p.friends.Apply(store.ReplaceList[model.FriendState](RequestFriendList, out.RequestFriendList))
	}()
}

// Loading reports whether a load is in progress
func (p *FriendRequests) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading > 0
}

// Requests returns the nicknames waiting for an answer
func (p *FriendRequests) Requests() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.requests...)
}

// Empty reports whether there is nothing to answer
func (p *FriendRequests) Empty() bool {
	return len(p.Requests()) == 0
}

// GoFriendList navigates to the friend list
func (p *FriendRequests) GoFriendList() {
	p.deps.navigate(route.FriendListPath)
}
