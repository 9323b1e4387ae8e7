// Package app is the owned state container of the client.
//
// A Container replaces a global store: it builds the transport, the services,
// one slice per resource type, the session and the runner, and hands them to the
// screens it creates. Nothing in it is package-level state.
package app

import (
	"context"
	"log/slog"

	"github.com/forgo/runningmate/internal/config"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/resource"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/screen"
	"github.com/forgo/runningmate/internal/session"
	"github.com/forgo/runningmate/internal/store"
)

// Container holds every client component
type Container struct {
	Config *config.ClientConfig
	Logger *slog.Logger

	Client  *resource.Client
	Notices *resource.NoticeService
	Friends *resource.FriendService
	Crews   *resource.CrewService
	Users   *resource.UserService

	Runner  *dispatch.Runner
	Session *session.Session

	CrewSlice   *store.Slice[model.Crew]
	FriendSlice *store.Slice[model.FriendState]
	NoticeSlice *store.Slice[model.NoticeBoard]

	Routes    *route.Table
	Navigator route.Navigator
	Notifier  notify.Notifier
}

// Option configures a Container
type Option func(*Container)

// WithNotifier sets where toasts go
func WithNotifier(n notify.Notifier) Option {
	return func(c *Container) {
		c.Notifier = n
	}
}

// WithNavigator sets who receives navigation commands
func WithNavigator(n route.Navigator) Option {
	return func(c *Container) {
		c.Navigator = n
	}
}

// WithLogger sets the logger shared by all components
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.Logger = logger
	}
}

// New builds a container from client settings
func New(cfg config.ClientConfig, opts ...Option) *Container {
	c := &Container{
		Config: &cfg,
		Logger: slog.Default(),
		Routes: route.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Navigator == nil {
		c.Navigator = route.NewHistory(route.HomePath)
	}
	if c.Notifier == nil {
		c.Notifier = notify.NewLogNotifier(c.Logger)
	}

	c.Client = resource.NewClient(cfg.BaseURL,
		resource.WithTimeout(cfg.RequestTimeout),
		resource.WithAuthHeader(cfg.AuthHeader),
		resource.WithLogger(c.Logger),
	)
	c.Notices = resource.NewNoticeService(c.Client)
	c.Friends = resource.NewFriendService(c.Client)
	c.Crews = resource.NewCrewService(c.Client)
	c.Users = resource.NewUserService(c.Client)

	c.Runner = dispatch.NewRunner(
		dispatch.WithTimeout(cfg.IntentTimeout),
		dispatch.WithLogger(c.Logger),
	)
	c.Session = session.New(c.Users, c.Runner)

	c.CrewSlice = screen.NewCrewSlice(c.Logger)
	c.FriendSlice = screen.NewFriendSlice(c.Logger)
	c.NoticeSlice = screen.NewNoticeSlice(c.Logger)
	return c
}

// Deps returns the collaborators screens share
func (c *Container) Deps() screen.Deps {
	return screen.Deps{
		Runner:        c.Runner,
		Session:       c.Session,
		Navigator:     c.Navigator,
		Notifier:      c.Notifier,
		Logger:        c.Logger,
		ToastDuration: c.Config.ToastDuration,
	}
}

// Reset returns every resource slice to its initial state
func (c *Container) Reset() {
	c.CrewSlice.Reset()
	c.FriendSlice.Reset()
	c.NoticeSlice.Reset()
}

// SignOut drops the session and all user data
func (c *Container) SignOut() {
	c.Session.SignOut()
	c.Reset()
}

// Shutdown waits for outstanding intents
func (c *Container) Shutdown(ctx context.Context) error {
	return c.Runner.Shutdown(ctx)
}

// Screens

func (c *Container) FriendRequests() *screen.FriendRequests {
	return screen.NewFriendRequests(c.Deps(), c.FriendSlice, c.Friends)
}

func (c *Container) FriendList() *screen.FriendList {
	return screen.NewFriendList(c.Deps(), c.FriendSlice, c.Friends)
}

func (c *Container) CrewList() *screen.CrewList {
	return screen.NewCrewList(c.Deps(), c.CrewSlice, c.Crews)
}

func (c *Container) CrewDetail() *screen.CrewDetail {
	return screen.NewCrewDetail(c.Deps(), c.CrewSlice, c.Crews)
}

func (c *Container) CrewManagement() *screen.CrewManagement {
	return screen.NewCrewManagement(c.Deps(), c.CrewSlice, c.Crews)
}

func (c *Container) CrewCreate() *screen.CrewCreate {
	return screen.NewCrewCreate(c.Deps(), c.CrewSlice, c.Crews)
}

func (c *Container) NoticeBoard() *screen.NoticeBoard {
	return screen.NewNoticeBoard(c.Deps(), c.NoticeSlice, c.Notices, c.Config.UseSampleBoard)
}

func (c *Container) NoticeDetail() *screen.NoticeDetail {
	return screen.NewNoticeDetail(c.Deps(), c.NoticeSlice, c.Notices)
}

func (c *Container) NoticeCreate() *screen.NoticeCreate {
	return screen.NewNoticeCreate(c.Deps(), c.NoticeSlice, c.Notices, c.Session)
}

func (c *Container) SignIn() *screen.SignIn {
	return screen.NewSignIn(c.Deps(), c.Session)
}
