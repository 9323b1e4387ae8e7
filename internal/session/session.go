// Package session owns the sign-in slice and the token every resource call reads.
package session

import (
	"context"

	"github.com/forgo/runningmate/internal/dispatch"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/resource"
	"github.com/forgo/runningmate/internal/store"
)

// Token is the credential held by the session
type Token = model.Token

// TokenSource reads the current token
type TokenSource interface {
	Token() Token
}

// StaticToken is a fixed TokenSource
type StaticToken Token

// Token returns the fixed token
func (t StaticToken) Token() Token {
	return Token(t)
}

// Authenticator signs users in and up
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (resource.SignInResult, error)
	SignUp(ctx context.Context, in resource.NewUser) error
}

// Session is the sign-in state
type Session struct {
	slice  *store.Slice[model.Session]
	auth   Authenticator
	runner *dispatch.Runner
}

// New creates an unauthenticated session
func New(auth Authenticator, runner *dispatch.Runner) *Session {
	return &Session{
		slice:  store.New("signIn", model.Session{}),
		auth:   auth,
		runner: runner,
	}
}

// Slice exposes the sign-in slice for bindings
func (s *Session) Slice() *store.Slice[model.Session] {
	return s.slice
}

// Token returns the current token, empty when signed out
func (s *Session) Token() Token {
	return s.slice.Snapshot().Data.Token
}

// NickName returns the signed-in nickname
func (s *Session) NickName() string {
	return s.slice.Snapshot().Data.NickName
}

// SignedIn returns true if a token is held
func (s *Session) SignedIn() bool {
	return !s.Token().IsZero()
}

// SignIn dispatches the sign-in intent. On success the slice holds the token.
func (s *Session) SignIn(ctx context.Context, email, password string) *dispatch.Handle {
	return dispatch.Dispatch(ctx, s.runner, s.slice, dispatch.Intent[model.Session]{
		Name: "sign in",
		Do: func(ctx context.Context) (store.Merge[model.Session], error) {
			res, err := s.auth.SignIn(ctx, email, password)
			if err != nil {
				return nil, err
			}
			return store.ReplaceData(model.Session{Token: res.Token, NickName: res.NickName}), nil
		},
	})
}

// SignUp dispatches the sign-up intent. Data is untouched on success.
func (s *Session) SignUp(ctx context.Context, in resource.NewUser) *dispatch.Handle {
	return dispatch.Dispatch(ctx, s.runner, s.slice, dispatch.Intent[model.Session]{
		Name: "sign up",
		Do: func(ctx context.Context) (store.Merge[model.Session], error) {
			return nil, s.auth.SignUp(ctx, in)
		},
	})
}

// Restore installs a token obtained elsewhere, such as a saved credential
func (s *Session) Restore(token Token, nickName string) {
	s.slice.ReplaceData(model.Session{Token: token, NickName: nickName})
}

// SignOut drops the token and any outstanding sign-in
func (s *Session) SignOut() {
	s.slice.Reset()
}
