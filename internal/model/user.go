package model

import "time"

// Token is an opaque authentication credential. The empty token means
// unauthenticated.
type Token string

// IsZero returns true if no credential is present
func (t Token) IsZero() bool {
	return t == ""
}

// User represents a registered account
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	NickName  string    `json:"nickName"`
	Hash      string    `json:"-"`
	CreatedOn time.Time `json:"created_on"`
}

// Dto returns the public view of the user
func (u User) Dto() UserDto {
	return UserDto{ID: u.ID, NickName: u.NickName, Email: u.Email}
}

// SignUpRequest is the body of POST /users/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	NickName string `json:"nickName"`
}

// SignInRequest is the body of POST /users/signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse is returned by POST /users/signin
type SignInResponse struct {
	Token    Token  `json:"token"`
	NickName string `json:"nickName"`
}

// Session is the client-side state of the sign-in slice
type Session struct {
	Token    Token  `json:"token"`
	NickName string `json:"nickName"`
}

// Password constraints
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// MaxNickNameLength bounds nicknames in runes
const MaxNickNameLength = 20
