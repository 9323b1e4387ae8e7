package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
	"github.com/samber/lo"
)

// FriendRepository handles friend relations keyed by nickname
type FriendRepository struct {
	db database.Database
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db database.Database) *FriendRepository {
	return &FriendRepository{db: db}
}

// Create stores a new relation
func (r *FriendRepository) Create(ctx context.Context, f model.Friendship) error {
	query := `
		CREATE friendship CONTENT {
			requester: $requester,
			requestee: $requestee,
			status: $status,
			created_on: time::now()
		}
	`
	err := r.db.Execute(ctx, query, map[string]interface{}{
		"requester": f.Requester,
		"requestee": f.Requestee,
		"status":    string(f.Status),
	})
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: friendship already exists", database.ErrDuplicate)
	}
	return err
}

// Find returns the relation between a and b in either direction, or nil
func (r *FriendRepository) Find(ctx context.Context, a, b string) (*model.Friendship, error) {
	query := `
		SELECT * FROM friendship
		WHERE (requester = $a AND requestee = $b) OR (requester = $b AND requestee = $a)
		LIMIT 1
	`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"a": a, "b": b})
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
	f := parseFriendship(m, 0)
	return &f, nil
}

// Accept turns the pending request from requester to requestee into a friendship
func (r *FriendRepository) Accept(ctx context.Context, requester, requestee string) error {
	query := `
		UPDATE friendship SET status = 'accepted'
		WHERE requester = $requester AND requestee = $requestee AND status = 'pending'
		RETURN AFTER
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"requester": requester, "requestee": requestee})
	if err != nil {
		return err
	}
	if len(extractQueryResults(result)) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes the relation from requester to requestee
func (r *FriendRepository) Delete(ctx context.Context, requester, requestee string) error {
	return r.db.Execute(ctx,
		"DELETE friendship WHERE requester = $requester AND requestee = $requestee",
		map[string]interface{}{"requester": requester, "requestee": requestee},
	)
}

// ListFriends returns the nicknames of accepted friends of nickName
func (r *FriendRepository) ListFriends(ctx context.Context, nickName string) ([]string, error) {
	query := `
		SELECT * FROM friendship
		WHERE status = 'accepted' AND (requester = $nick OR requestee = $nick)
		ORDER BY created_on ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"nick": nickName})
	if err != nil {
		return nil, err
	}
	return lo.Map(extractQueryResults(result), func(row map[string]interface{}, i int) string {
		return parseFriendship(row, i).Other(nickName)
	}), nil
}

// ListPending returns the nicknames waiting for nickName's answer
func (r *FriendRepository) ListPending(ctx context.Context, nickName string) ([]string, error) {
	query := `
		SELECT * FROM friendship
		WHERE status = 'pending' AND requestee = $nick
		ORDER BY created_on ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"nick": nickName})
	if err != nil {
		return nil, err
	}
	return lo.Map(extractQueryResults(result), func(row map[string]interface{}, _ int) string {
		return getString(row, "requester")
	}), nil
}

func parseFriendship(m map[string]interface{}, _ int) model.Friendship {
	return model.Friendship{
		Requester: getString(m, "requester"),
		Requestee: getString(m, "requestee"),
		Status:    model.FriendshipStatus(getString(m, "status")),
	}
}
