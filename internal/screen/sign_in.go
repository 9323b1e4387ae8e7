package screen

import (
	"context"

	"github.com/forgo/runningmate/internal/binding"
	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/notify"
	"github.com/forgo/runningmate/internal/route"
	"github.com/forgo/runningmate/internal/session"
	"github.com/forgo/runningmate/internal/store"
)

var signInFailedToast = notify.Error("로그인 실패", "이메일 또는 비밀번호를 확인해주세요.")

// SignIn is the guest page
type SignIn struct {
	deps    Deps
	session *session.Session
	bind    *binding.Binding[model.Session]
}

// NewSignIn creates the page. A successful sign-in goes home.
func NewSignIn(deps Deps, s *session.Session) *SignIn {
	p := &SignIn{deps: deps, session: s}
	p.bind = binding.New(s.Slice(), binding.Handlers[model.Session]{
		OnSuccess: func(ctx context.Context, _ store.Snapshot[model.Session]) {
			if s.SignedIn() {
				p.deps.navigate(route.HomePath)
			}
		},
	}, deps.bindingOptions(binding.WithFailureToast(signInFailedToast))...)
	return p
}

// Mount starts watching the session
func (p *SignIn) Mount(ctx context.Context) {
	p.bind.Start(ctx)
}

// Unmount stops watching
func (p *SignIn) Unmount() {
	p.bind.Stop()
}

// Submit signs in
func (p *SignIn) Submit(ctx context.Context, email, password string) *dispatch.Handle {
	return p.session.SignIn(ctx, email, password)
}
