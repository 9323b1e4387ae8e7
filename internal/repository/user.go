package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	num, err := database.NextID(ctx, r.db, "user")
	if err != nil {
		return err
	}

	query := `
		CREATE type::thing('user', $num) CONTENT {
			num: $num,
			email: $email,
			nick_name: $nick_name,
			hash: $hash,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"num":       num,
		"email":     user.Email,
		"nick_name": user.NickName,
		"hash":      user.Hash,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email or nickname already exists", database.ErrDuplicate)
		}
		return err
	}

	rows := extractQueryResults(result)
	if len(rows) == 0 {
		return fmt.Errorf("%w: create user returned no record", database.ErrQuery)
	}
	*user = *parseUser(rows[0])
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM type::thing('user', $num)", map[string]interface{}{"num": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM user WHERE email = $email LIMIT 1", map[string]interface{}{"email": email})
}

// GetByNickName retrieves a user by nickname
func (r *UserRepository) GetByNickName(ctx context.Context, nickName string) (*model.User, error) {
	return r.getOne(ctx, "SELECT * FROM user WHERE nick_name = $nick_name LIMIT 1", map[string]interface{}{"nick_name": nickName})
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	m, ok := asRecord(result)
	if !ok {
		return nil, nil
	}
	return parseUser(m), nil
}

func parseUser(m map[string]interface{}) *model.User {
	return &model.User{
		ID:        getInt64(m, "num"),
		Email:     getString(m, "email"),
		NickName:  getString(m, "nick_name"),
		Hash:      getString(m, "hash"),
		CreatedOn: getTime(m, "created_on"),
	}
}
