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

// DefaultNoticePageSize is how many notices the board shows at once
const DefaultNoticePageSize = 6

const (
	actionLoadNotice   = "get notice"
	actionDeleteNotice = "delete notice"
)

var noticeDeletedToast = notify.Success("게시글 삭제 완료", "")

// NickNamer reports the signed-in nickname
type NickNamer interface {
	NickName() string
}

// NoticeBoard is the home page listing notices around an address
type NoticeBoard struct {
	deps    Deps
	notices *store.Slice[model.NoticeBoard]
	api     NoticeAPI
	bind    *binding.Binding[model.NoticeBoard]
	sample  bool

	mu     sync.Mutex
	filter model.Address
	offset int
	limit  int
}

// NewNoticeBoard creates the page. With sample set the bundled sample board is
// listed instead of the remote one.
func NewNoticeBoard(deps Deps, notices *store.Slice[model.NoticeBoard], api NoticeAPI, sample bool) *NoticeBoard {
	p := &NoticeBoard{
		deps:    deps,
		notices: notices,
		api:     api,
		sample:  sample,
		limit:   DefaultNoticePageSize,
	}
	p.bind = binding.New(notices, binding.Handlers[model.NoticeBoard]{}, deps.bindingOptions()...)
	return p
}

// Mount starts watching and loads the first window
func (p *NoticeBoard) Mount(ctx context.Context) *dispatch.Handle {
	p.bind.Start(ctx)
	return p.Load(ctx)
}

// Unmount stops watching
func (p *NoticeBoard) Unmount() {
	p.bind.Stop()
}

// SetFilter narrows the listing to an address and rewinds to the first window
func (p *NoticeBoard) SetFilter(ctx context.Context, filter model.Address) *dispatch.Handle {
	p.mu.Lock()
	p.filter = filter
	p.offset = 0
	p.mu.Unlock()
	return p.Load(ctx)
}

// Next advances by one window
func (p *NoticeBoard) Next(ctx context.Context) *dispatch.Handle {
	p.mu.Lock()
	p.offset += p.limit
	p.mu.Unlock()
	return p.Load(ctx)
}

// Prev goes back one window, stopping at the first
func (p *NoticeBoard) Prev(ctx context.Context) *dispatch.Handle {
	p.mu.Lock()
	p.offset = max(0, p.offset-p.limit)
	p.mu.Unlock()
	return p.Load(ctx)
}

// Load fetches the current window into the slice
func (p *NoticeBoard) Load(ctx context.Context) *dispatch.Handle {
	p.mu.Lock()
	q := resource.NoticeQuery{Address: p.filter, Offset: p.offset, Limit: p.limit}
	p.mu.Unlock()

	return dispatch.Dispatch(ctx, p.deps.Runner, p.notices, dispatch.Intent[model.NoticeBoard]{
		Name: "list notices",
		Do: func(ctx context.Context) (store.Merge[model.NoticeBoard], error) {
			var page model.NoticePage
			if p.sample {
				page = p.api.SampleNotices(q.Offset, q.Limit)
			} else {
				var err error
				if page, err = p.api.ListNotices(ctx, q); err != nil {
					return nil, err
				}
			}
			return setPage(page), nil
		},
	})
}

// Notices returns the loaded window in server order
func (p *NoticeBoard) Notices() []model.NoticeSummary {
	return p.notices.Snapshot().Data.Page.Notices()
}

// Offset returns the position of the current window
func (p *NoticeBoard) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

// Open navigates to one notice
func (p *NoticeBoard) Open(id int64) {
	p.deps.navigate(route.NoticePath(id))
}

// Create navigates to the notice form
func (p *NoticeBoard) Create() {
	p.deps.navigate(route.CreateNoticePath)
}

func setPage(page model.NoticePage) store.Merge[model.NoticeBoard] {
	return func(s store.Snapshot[model.NoticeBoard]) store.Snapshot[model.NoticeBoard] {
		data := s.Data
		data.Page = page
		return s.WithData(data)
	}
}

func setCurrent(n model.NoticeSummary) store.Merge[model.NoticeBoard] {
	return func(s store.Snapshot[model.NoticeBoard]) store.Snapshot[model.NoticeBoard] {
		data := s.Data
		data.Current = n
		return s.WithData(data)
	}
}

// NoticeDetail is the page of one notice
type NoticeDetail struct {
	deps    Deps
	notices *store.Slice[model.NoticeBoard]
	api     NoticeAPI
	bind    *binding.Binding[model.NoticeBoard]
	last    action
	id      int64
}

// NewNoticeDetail creates the page. A deleted notice leaves for the home page.
func NewNoticeDetail(deps Deps, notices *store.Slice[model.NoticeBoard], api NoticeAPI) *NoticeDetail {
	p := &NoticeDetail{deps: deps, notices: notices, api: api}
	p.bind = binding.New(notices, binding.Handlers[model.NoticeBoard]{
		OnSuccess: func(ctx context.Context, _ store.Snapshot[model.NoticeBoard]) {
			if p.last.get() == actionDeleteNotice {
				p.deps.notify(ctx, noticeDeletedToast)
				p.deps.navigate(route.HomePath)
			}
		},
	}, deps.bindingOptions()...)
	return p
}

// Mount loads notice id
func (p *NoticeDetail) Mount(ctx context.Context, id int64) *dispatch.Handle {
	p.id = id
	p.bind.Start(ctx)
	token := p.deps.token()
	p.last.set(actionLoadNotice)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.notices, dispatch.Intent[model.NoticeBoard]{
		Name: actionLoadNotice,
		Do: func(ctx context.Context) (store.Merge[model.NoticeBoard], error) {
			n, err := p.api.GetNotice(ctx, id, token)
			if err != nil {
				return nil, err
			}
			return setCurrent(n), nil
		},
	})
}

// Unmount stops watching
func (p *NoticeDetail) Unmount() {
	p.bind.Stop()
}

// Delete removes the mounted notice
func (p *NoticeDetail) Delete(ctx context.Context) *dispatch.Handle {
	token, id := p.deps.token(), p.id
	p.last.set(actionDeleteNotice)
	return dispatch.Dispatch(ctx, p.deps.Runner, p.notices, dispatch.Intent[model.NoticeBoard]{
		Name: actionDeleteNotice,
		Do: func(ctx context.Context) (store.Merge[model.NoticeBoard], error) {
			if _, err := p.api.DeleteNotice(ctx, id, token); err != nil {
				return nil, err
			}
			return func(s store.Snapshot[model.NoticeBoard]) store.Snapshot[model.NoticeBoard] {
				return s.WithData(s.Data.Without(id))
			}, nil
		},
	})
}

// Notice returns the loaded notice
func (p *NoticeDetail) Notice() model.NoticeSummary {
	return p.notices.Snapshot().Data.Current
}

// NoticeCreate is the page posting a notice
type NoticeCreate struct {
	deps    Deps
	notices *store.Slice[model.NoticeBoard]
	api     NoticeAPI
	author  NickNamer
	bind    *binding.Binding[model.NoticeBoard]
}

// NewNoticeCreate creates the page. A created notice is opened right away.
func NewNoticeCreate(deps Deps, notices *store.Slice[model.NoticeBoard], api NoticeAPI, author NickNamer) *NoticeCreate {
	p := &NoticeCreate{deps: deps, notices: notices, api: api, author: author}
	p.bind = binding.New(notices, binding.Handlers[model.NoticeBoard]{
		OnSuccess: func(ctx context.Context, snap store.Snapshot[model.NoticeBoard]) {
			p.deps.navigate(route.NoticePath(snap.Data.Current.ID))
		},
	}, deps.bindingOptions()...)
	return p
}

// Mount starts watching
func (p *NoticeCreate) Mount(ctx context.Context) {
	p.bind.Start(ctx)
}

// Unmount stops watching
func (p *NoticeCreate) Unmount() {
	p.bind.Stop()
}

// Submit posts the notice as the signed-in user
func (p *NoticeCreate) Submit(ctx context.Context, n model.Notice) *dispatch.Handle {
	token, author := p.deps.token(), p.author.NickName()
	return dispatch.Dispatch(ctx, p.deps.Runner, p.notices, dispatch.Intent[model.NoticeBoard]{
		Name: "create notice",
		Do: func(ctx context.Context) (store.Merge[model.NoticeBoard], error) {
			created, err := p.api.CreateNotice(ctx, token, n, author)
			if err != nil {
				return nil, err
			}
			return setCurrent(created), nil
		},
	})
}
