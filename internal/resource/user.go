package resource

import (
	"context"
	"net/http"

	"github.com/forgo/runningmate/internal/model"
)

// NewUser is the input to SignUp
type NewUser = model.SignUpRequest

// SignInResult is the session granted by SignIn
type SignInResult = model.SignInResponse

// UserService talks to /users
type UserService struct {
	client *Client
}

// NewUserService creates a user service
func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

// SignIn exchanges credentials for a token
func (s *UserService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	body := model.SignInRequest{Email: email, Password: password}

	var out SignInResult
	if err := s.client.do(ctx, call{method: http.MethodPost, path: "/users/signin", body: body}, &out); err != nil {
		return SignInResult{}, s.client.fail(ctx, "sign in", ErrSignInFailed, err)
	}
	if out.Token.IsZero() {
		return SignInResult{}, opError("sign in", ErrSignInFailed)
	}
	return out, nil
}

// SignUp registers a new account
func (s *UserService) SignUp(ctx context.Context, in NewUser) error {
	if err := s.client.do(ctx, call{method: http.MethodPost, path: "/users/signup", body: in}, nil); err != nil {
		return s.client.fail(ctx, "sign up", ErrCreateFailed, err)
	}
	return nil
}
