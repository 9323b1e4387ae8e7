package screen

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/runningmate/internal/binding"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/resource"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/session"
	"github.com/forgo/runningmate/internal/store"
)

// Related lists carried by the resource slices
const (
	Crews             store.ListKey[model.CrewSummary] = "crews"
	RequestUsers      store.ListKey[model.UserDto]     = "requestUsers"
	RequestFriendList store.ListKey[string]            = "requestFriendList"
)

// NewCrewSlice creates the crew slice
func NewCrewSlice(logger *slog.Logger) *store.Slice[model.Crew] {
	return store.New("crew", model.Crew{}.Normalize(),
		store.WithClone(model.Crew.Normalize),
		store.WithLogger[model.Crew](logger),
	)
}

// NewFriendSlice creates the friend slice
func NewFriendSlice(logger *slog.Logger) *store.Slice[model.FriendState] {
	return store.New("friend", model.FriendState{}.Normalize(),
		store.WithClone(model.FriendState.Normalize),
		store.WithLogger[model.FriendState](logger),
	)
}

// NewNoticeSlice creates the notice slice
func NewNoticeSlice(logger *slog.Logger) *store.Slice[model.NoticeBoard] {
	return store.New("notice", model.NoticeBoard{Page: model.NewNoticePage()},
		store.WithLogger[model.NoticeBoard](logger),
	)
}

// CrewAPI is the crew resource as screens use it
type CrewAPI interface {
	ListCrews(ctx context.Context, offset, limit int) ([]model.CrewSummary, error)
	GetCrew(ctx context.Context, id int64) (model.Crew, error)
	CreateCrew(ctx context.Context, token model.Token, in resource.NewCrew) (model.Crew, error)
	RequestJoin(ctx context.Context, token model.Token, crewID int64) error
	ManageJoinRequest(ctx context.Context, token model.Token, crewID int64, nickName string, role model.RequestRole) error
}

// FriendAPI is the friend resource as screens use it
type FriendAPI interface {
	GetRequestFriends(ctx context.Context, token model.Token) (model.FriendRequests, error)
	GetFriends(ctx context.Context, token model.Token) (model.Friends, error)
	RequestFriend(ctx context.Context, in resource.FriendIntent) error
}

// NoticeAPI is the notice resource as screens use it
type NoticeAPI interface {
	CreateNotice(ctx context.Context, token model.Token, notice model.Notice, author string) (model.NoticeSummary, error)
	ListNotices(ctx context.Context, q resource.NoticeQuery) (model.NoticePage, error)
	GetNotice(ctx context.Context, id int64, token model.Token) (model.NoticeSummary, error)
	DeleteNotice(ctx context.Context, id int64, token model.Token) (bool, error)
	SampleNotices(offset, limit int) model.NoticePage
}

// Deps are the collaborators every screen shares
type Deps struct {
	Runner        *dispatch.Runner
	Session       session.TokenSource
	Navigator     route.Navigator
	Notifier      notify.Notifier
	Logger        *slog.Logger
	ToastDuration time.Duration
}

func (d Deps) token() model.Token {
	if d.Session == nil {
		return ""
	}
	return d.Session.Token()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d Deps) navigate(path string) {
	if d.Navigator != nil {
		d.Navigator.Navigate(path)
	}
}

func (d Deps) notify(ctx context.Context, t notify.Toast) {
	if d.Notifier != nil {
		d.Notifier.Notify(ctx, t)
	}
}

func (d Deps) bindingOptions(extra ...binding.Option) []binding.Option {
	opts := []binding.Option{binding.WithLogger(d.logger())}
	if d.ToastDuration > 0 {
		opts = append(opts, binding.WithToastTimer(d.ToastDuration))
	}
	if d.Notifier != nil {
		opts = append(opts, binding.WithNotifier(d.Notifier))
	}
	return append(opts, extra...)
}

// action remembers which user action the next terminal status of a shared slice
// answers. Overlapping actions on one slice keep the last one.
type action struct {
	mu   sync.Mutex
	name string
}

func (a *action) set(name string) {
	a.mu.Lock()
	a.name = name
	a.mu.Unlock()
}

func (a *action) get() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}
