package screen

import (
	"context"

	"github.com/forgo/runningmate/internal/binding"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/store"
)

const (
	actionLoadCrew   = "get crew"
	actionJoinCrew   = "request join"
	actionManageCrew = "manage join request"
	actionCreateCrew = "create crew"
)

var (
	joinRequestedToast = notify.Success("가입 신청 완료", "크루장의 승인을 기다려주세요.")
	crewCreatedToast   = notify.Success("크루 생성 완료", "")
)

// loadCrewIntent fetches one crew into the slice data and its requestUsers list
func loadCrewIntent(api CrewAPI, id int64) dispatch.Intent[model.Crew] {
	return dispatch.Intent[model.Crew]{
		Name: actionLoadCrew,
		Do: func(ctx context.Context) (store.Merge[model.Crew], error) {
			crew, err := api.GetCrew(ctx, id)
			if err != nil {
				return nil, err
			}
			return store.Chain(
				store.ReplaceData(crew),
				store.ReplaceList[model.Crew](RequestUsers, crew.RequestUsers),
			), nil
		},
	}
}

// CrewDetail is the page of one crew
type CrewDetail struct {
	deps  Deps
	crews *store.Slice[model.Crew]
	api   CrewAPI
	bind  *binding.Binding[model.Crew]
	last  action
	id    int64
}

// NewCrewDetail creates the page
func NewCrewDetail(deps Deps, crews *store.Slice[model.Crew], api CrewAPI) *CrewDetail {
	p := &CrewDetail{deps: deps, crews: crews, api: api}
	p.bind = binding.New(crews, binding.Handlers[model.Crew]{
		OnSuccess: func(ctx context.Context, _ store.Snapshot[model.Crew]) {
			if p.last.get() == actionJoinCrew {
				p.deps.notify(ctx, joinRequestedToast)
			}
		},
	}, deps.bindingOptions()...)
	return p
}

// Mount loads crew id
func (p *CrewDetail) Mount(ctx context.Context, id int64) *dispatch.Handle {
	p.id = id
	p.bind.Start(ctx)
	p.last.set(actionLoadCrew)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, loadCrewIntent(p.api, id))
}

// Unmount stops watching and clears the crew slice
func (p *CrewDetail) Unmount() {
	p.bind.Stop()
	p.crews.Reset()
}

// Join sends a join request for the mounted crew
func (p *CrewDetail) Join(ctx context.Context) *dispatch.Handle {
	token, id := p.deps.token(), p.id
	p.last.set(actionJoinCrew)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, dispatch.Intent[model.Crew]{
		Name: actionJoinCrew,
		Do: func(ctx context.Context) (store.Merge[model.Crew], error) {
			return nil, p.api.RequestJoin(ctx, token, id)
		},
	})
}

// Crew returns the loaded crew
func (p *CrewDetail) Crew() model.Crew {
	return p.crews.Snapshot().Data.Normalize()
}

// GoManagement navigates to the member management page
func (p *CrewDetail) GoManagement() {
	p.deps.navigate(route.CrewManagementPath(p.id))
}

// CrewManagement is the leader's page answering join requests
type CrewManagement struct {
	deps  Deps
	crews *store.Slice[model.Crew]
	api   CrewAPI
	bind  *binding.Binding[model.Crew]
	last  action
	id    int64
}

// NewCrewManagement creates the page. After each answered request the crew is
// reloaded so the requester list reflects the decision.
func NewCrewManagement(deps Deps, crews *store.Slice[model.Crew], api CrewAPI) *CrewManagement {
	p := &CrewManagement{deps: deps, crews: crews, api: api}
	p.bind = binding.New(crews, binding.Handlers[model.Crew]{
		OnSuccess: func(ctx context.Context, _ store.Snapshot[model.Crew]) {
			if p.last.get() == actionManageCrew {
				p.reload(ctx)
			}
		},
	}, deps.bindingOptions()...)
	return p
}

// Mount loads crew id
func (p *CrewManagement) Mount(ctx context.Context, id int64) *dispatch.Handle {
	p.id = id
	p.bind.Start(ctx)
	return p.reload(ctx)
}

// Unmount stops watching
func (p *CrewManagement) Unmount() {
	p.bind.Stop()
}

func (p *CrewManagement) reload(ctx context.Context) *dispatch.Handle {
	p.last.set(actionLoadCrew)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, loadCrewIntent(p.api, p.id))
}

// Permit admits nickName into the crew
func (p *CrewManagement) Permit(ctx context.Context, nickName string) *dispatch.Handle {
	return p.manage(ctx, nickName, model.RolePermit)
}

// Dismiss rejects nickName's join request
func (p *CrewManagement) Dismiss(ctx context.Context, nickName string) *dispatch.Handle {
	return p.manage(ctx, nickName, model.RoleDismiss)
}

func (p *CrewManagement) manage(ctx context.Context, nickName string, role model.RequestRole) *dispatch.Handle {
	token, id := p.deps.token(), p.id
	p.last.set(actionManageCrew)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, dispatch.Intent[model.Crew]{
		Name: actionManageCrew + " " + string(role),
		Do: func(ctx context.Context) (store.Merge[model.Crew], error) {
			return nil, p.api.ManageJoinRequest(ctx, token, id, nickName, role)
		},
	})
}

// Requesters returns the users waiting for an answer
func (p *CrewManagement) Requesters() []model.UserDto {
	return store.List(p.crews.Snapshot(), RequestUsers)
}

// Members returns the crew members
func (p *CrewManagement) Members() []model.UserDto {
	return p.crews.Snapshot().Data.Normalize().UserDtos
}

// CrewCreate is the page creating a crew
type CrewCreate struct {
	deps  Deps
	crews *store.Slice[model.Crew]
	api   CrewAPI
	bind  *binding.Binding[model.Crew]
}

// NewCrewCreate creates the page. A created crew is opened right away.
func NewCrewCreate(deps Deps, crews *store.Slice[model.Crew], api CrewAPI) *CrewCreate {
	p := &CrewCreate{deps: deps, crews: crews, api: api}
	p.bind = binding.New(crews, binding.Handlers[model.Crew]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[model.Crew]) {
			p.deps.notify(ctx, crewCreatedToast)
			p.deps.navigate(route.CrewPath(snap.Data.ID))
		},
	}, deps.bindingOptions()...)
	return p
}

// Mount starts watching the crew slice from a clean state
func (p *CrewCreate) Mount(ctx context.Context) {
	p.crews.Reset()
	p.bind.Start(ctx)
}

// Unmount stops watching
func (p *CrewCreate) Unmount() {
	p.bind.Stop()
}

// Submit creates the crew
func (p *CrewCreate) Submit(ctx context.Context, in model.CreateCrewRequest) *dispatch.Handle {
	token := p.deps.token()
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, dispatch.Intent[model.Crew]{
		Name: actionCreateCrew,
		Do: func(ctx context.Context) (store.Merge[model.Crew], error) {
			crew, err := p.api.CreateCrew(ctx, token, in)
			if err != nil {
				return nil, err
			}
			return store.ReplaceData(crew), nil
		},
	})
}

// CrewList is the crew browser
type CrewList struct {
	deps  Deps
	crews *store.Slice[model.Crew]
	api   CrewAPI
	bind  *binding.Binding[model.Crew]
}

// NewCrewList creates the page
func NewCrewList(deps Deps, crews *store.Slice[model.Crew], api CrewAPI) *CrewList {
	p := &CrewList{deps: deps, crews: crews, api: api}
	p.bind = binding.New(crews, binding.Handlers[model.Crew]{}, deps.bindingOptions()...)
	return p
}

// Mount starts watching and loads the first page
func (p *CrewList) Mount(ctx context.Context, limit int) *dispatch.Handle {
	p.bind.Start(ctx)
	return p.Load(ctx, 0, limit)
}

// Unmount stops watching
func (p *CrewList) Unmount() {
	p.bind.Stop()
}

// Load fetches one window of crews into the crews list
func (p *CrewList) Load(ctx context.Context, offset, limit int) *dispatch.Handle {
	return dispatch.Dispatch(ctx, p.deps.Runner, p.crews, dispatch.Intent[model.Crew]{
		Name: "list crews",
		Do: func(ctx context.Context) (store.Merge[model.Crew], error) {
			crews, err := p.api.ListCrews(ctx, offset, limit)
			if err != nil {
				return nil, err
			}
			return store.ReplaceList[model.Crew](Crews, crews), nil
		},
	})
}

// Crews returns the loaded window
func (p *CrewList) Crews() []model.CrewSummary {
	return store.List(p.crews.Snapshot(), Crews)
}

// Open navigates to one crew
func (p *CrewList) Open(id int64) {
	p.deps.navigate(route.CrewPath(id))
}

// NewCrew navigates to the crew creation page
func (p *CrewList) NewCrew() {
	p.deps.navigate(route.NewCrewPath)
}
