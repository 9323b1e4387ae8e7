package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const defaultBcryptCost = 12

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByNickName(ctx context.Context, nickName string) (*model.User, error)
}

// Caller is the authenticated user a request acts for
type Caller struct {
	ID       int64
	NickName string
}

// Dto returns the public view of the caller
func (c Caller) Dto() model.UserDto {
	return model.UserDto{ID: c.ID, NickName: c.NickName}
}

// AuthService handles sign-up, sign-in and token validation
type AuthService struct {
	userRepo   UserRepository
	tokens     *jwt.Service
	bcryptCost int
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo   UserRepository
	Tokens     *jwt.Service
	BcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = defaultBcryptCost
	}
	return &AuthService{
		userRepo:   cfg.UserRepo,
		tokens:     cfg.Tokens,
		bcryptCost: cost,
	}
}

// SignUp creates a new account with email, nickname and password
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	nickName := strings.TrimSpace(req.NickName)
	if err := validateNickName(nickName); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	existing, err = s.userRepo.GetByNickName(ctx, nickName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNickNameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, NickName: nickName, Hash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent sign-up
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// SignIn checks credentials and issues an access token
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.SignInResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(req.Password, user.Hash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.SignInResponse{Token: model.Token(token), NickName: user.NickName}, nil
}

// IssueToken signs an access token for user
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return s.tokens.Sign(jwt.Claims{
		UserID:   user.ID,
		NickName: user.NickName,
		Email:    user.Email,
	})
}

// ValidateAccessToken checks an access token and returns its claims
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.tokens.Validate(token)
}

// GetUser returns a user by ID
func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func checkPassword(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < model.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > model.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func validateNickName(nickName string) error {
	if nickName == "" {
		return ErrNickNameRequired
	}
	if utf8.RuneCountInString(nickName) > model.MaxNickNameLength {
		return ErrNickNameTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	return dotIndex < len(email)-1
}
