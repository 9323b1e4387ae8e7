package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
	"github.com/samber/lo"
)

// The memory repositories back DB_DRIVER=memory and the end-to-end tests. They
// mirror the SurrealDB repositories: missing records are (nil, nil), unique
// violations wrap database.ErrDuplicate and results are copies.

// MemoryUserRepository keeps users in process memory
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]model.User
	lastID int64
	now    func() time.Time
}

// NewMemoryUserRepository creates an empty user store
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]model.User), now: time.Now}
}

// Create stores a user and assigns its ID
func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.NickName == user.NickName {
			return fmt.Errorf("%w: email or nickname already exists", database.ErrDuplicate)
		}
	}
	r.lastID++
	user.ID = r.lastID
	user.CreatedOn = r.now()
	r.users[user.ID] = *user
	return nil
}

// GetByID retrieves a user by ID
func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetByEmail retrieves a user by email
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u model.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

// GetByNickName retrieves a user by nickname
func (r *MemoryUserRepository) GetByNickName(_ context.Context, nickName string) (*model.User, error) {
	return r.find(func(u model.User) bool { return u.NickName == nickName }), nil
}

func (r *MemoryUserRepository) find(match func(model.User) bool) *model.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := lo.Find(lo.Values(r.users), match); ok {
		return &u
	}
	return nil
}

// MemoryBoardRepository keeps board posts in process memory
type MemoryBoardRepository struct {
	mu     sync.RWMutex
	boards map[int64]model.Board
	lastID int64
	now    func() time.Time
}

// NewMemoryBoardRepository creates an empty board store
func NewMemoryBoardRepository() *MemoryBoardRepository {
	return &MemoryBoardRepository{boards: make(map[int64]model.Board), now: time.Now}
}

// Create stores a board post. A zero ID is assigned; seeded posts keep their own.
func (r *MemoryBoardRepository) Create(_ context.Context, board *model.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if board.ID == 0 {
		board.ID = r.lastID + 1
	}
	if _, exists := r.boards[board.ID]; exists {
		return fmt.Errorf("%w: board %d already exists", database.ErrDuplicate, board.ID)
	}
	if board.ID > r.lastID {
		r.lastID = board.ID
	}
	board.CreatedOn = r.now()
	r.boards[board.ID] = *board
	return nil
}

// GetByID retrieves a board post by ID
func (r *MemoryBoardRepository) GetByID(_ context.Context, id int64) (*model.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if b, ok := r.boards[id]; ok {
		return &b, nil
	}
	return nil, nil
}

// List returns posts matching the filter address in ID order, windowed by
// offset and limit
func (r *MemoryBoardRepository) List(_ context.Context, filter model.BoardFilter) ([]*model.Board, error) {
	r.mu.RLock()
	matched := lo.Filter(lo.Values(r.boards), func(b model.Board, _ int) bool {
		return b.Address.Matches(filter.Address)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	start, end := window(len(matched), filter.Offset, filter.Limit)
	return lo.Map(matched[start:end], func(b model.Board, _ int) *model.Board {
		return &b
	}), nil
}

// Delete removes a board post
func (r *MemoryBoardRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, id)
	return nil
}

// CloseBefore marks open posts whose meeting time is before now as closed
func (r *MemoryBoardRepository) CloseBefore(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := 0
	for id, b := range r.boards {
		at, ok := b.MeetingAt()
		if b.Closed || !ok || !at.Before(now) {
			continue
		}
		b.Closed = true
		r.boards[id] = b
		closed++
	}
	return closed, nil
}

// MemoryCrewRepository keeps crews in process memory
type MemoryCrewRepository struct {
	mu     sync.RWMutex
	crews  map[int64]model.Crew
	lastID int64
}

// NewMemoryCrewRepository creates an empty crew store
func NewMemoryCrewRepository() *MemoryCrewRepository {
	return &MemoryCrewRepository{crews: make(map[int64]model.Crew)}
}

// Create stores a crew and assigns its ID
func (r *MemoryCrewRepository) Create(_ context.Context, crew *model.Crew) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lo.ContainsBy(lo.Values(r.crews), func(c model.Crew) bool { return c.CrewName == crew.CrewName }) {
		return fmt.Errorf("%w: crew name already exists", database.ErrDuplicate)
	}
	r.lastID++
	crew.ID = r.lastID
	*crew = crew.Normalize()
	r.crews[crew.ID] = crew.Normalize()
	return nil
}

// GetByID retrieves a crew by ID
func (r *MemoryCrewRepository) GetByID(_ context.Context, id int64) (*model.Crew, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.crews[id]; ok {
		c = c.Normalize()
		return &c, nil
	}
	return nil, nil
}

// GetByName retrieves a crew by name
func (r *MemoryCrewRepository) GetByName(_ context.Context, name string) (*model.Crew, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := lo.Find(lo.Values(r.crews), func(c model.Crew) bool { return c.CrewName == name }); ok {
		c = c.Normalize()
		return &c, nil
	}
	return nil, nil
}

// List returns crews in ID order, windowed by offset and limit
func (r *MemoryCrewRepository) List(_ context.Context, offset, limit int) ([]*model.Crew, error) {
	r.mu.RLock()
	all := lo.Values(r.crews)
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start, end := window(len(all), offset, limit)
	return lo.Map(all[start:end], func(c model.Crew, _ int) *model.Crew {
		c = c.Normalize()
		return &c
	}), nil
}

// AddRequest records a pending join request
func (r *MemoryCrewRepository) AddRequest(_ context.Context, crewID int64, user model.UserDto) error {
	return r.update(crewID, func(c *model.Crew) {
		c.RequestUsers = append(c.RequestUsers, model.UserDto{ID: user.ID, NickName: user.NickName})
	})
}

// RemoveRequest drops a pending join request
func (r *MemoryCrewRepository) RemoveRequest(_ context.Context, crewID, userID int64) error {
	return r.update(crewID, func(c *model.Crew) {
		c.RequestUsers = lo.Reject(c.RequestUsers, func(u model.UserDto, _ int) bool { return u.ID == userID })
	})
}

// Admit moves a requester into the member list
func (r *MemoryCrewRepository) Admit(_ context.Context, crewID int64, user model.UserDto) error {
	return r.update(crewID, func(c *model.Crew) {
		c.RequestUsers = lo.Reject(c.RequestUsers, func(u model.UserDto, _ int) bool { return u.ID == user.ID })
		c.UserDtos = append(c.UserDtos, model.UserDto{ID: user.ID, NickName: user.NickName})
	})
}

func (r *MemoryCrewRepository) update(crewID int64, fn func(*model.Crew)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.crews[crewID]
	if !ok {
		return database.ErrNotFound
	}
	c = c.Normalize()
	fn(&c)
	r.crews[crewID] = c
	return nil
}

// MemoryFriendRepository keeps friend relations in process memory
type MemoryFriendRepository struct {
	mu      sync.RWMutex
	entries []model.Friendship
}

// NewMemoryFriendRepository creates an empty friend store
func NewMemoryFriendRepository() *MemoryFriendRepository {
	return &MemoryFriendRepository{}
}

// Create stores a new relation
func (r *MemoryFriendRepository) Create(_ context.Context, f model.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, _, ok := r.indexLocked(f.Requester, f.Requestee); ok {
		return fmt.Errorf("%w: friendship already exists", database.ErrDuplicate)
	}
	r.entries = append(r.entries, f)
	return nil
}

// Find returns the relation between a and b in either direction, or nil
func (r *MemoryFriendRepository) Find(_ context.Context, a, b string) (*model.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, _, ok := lo.FindIndexOf(r.entries, func(f model.Friendship) bool {
		return (f.Requester == a && f.Requestee == b) || (f.Requester == b && f.Requestee == a)
	})
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// Accept turns the pending request from requester to requestee into a friendship
func (r *MemoryFriendRepository) Accept(_ context.Context, requester, requestee string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, i, ok := r.indexLocked(requester, requestee)
	if !ok || f.Status != model.FriendshipPending {
		return database.ErrNotFound
	}
	r.entries[i].Status = model.FriendshipAccepted
	return nil
}

// Delete removes the relation from requester to requestee
func (r *MemoryFriendRepository) Delete(_ context.Context, requester, requestee string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = lo.Reject(r.entries, func(f model.Friendship, _ int) bool {
		return f.Requester == requester && f.Requestee == requestee
	})
	return nil
}

// ListFriends returns the nicknames of accepted friends of nickName
func (r *MemoryFriendRepository) ListFriends(_ context.Context, nickName string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	accepted := lo.Filter(r.entries, func(f model.Friendship, _ int) bool {
		return f.Status == model.FriendshipAccepted && (f.Requester == nickName || f.Requestee == nickName)
	})
	return lo.Map(accepted, func(f model.Friendship, _ int) string { return f.Other(nickName) }), nil
}

// ListPending returns the nicknames waiting for nickName's answer
func (r *MemoryFriendRepository) ListPending(_ context.Context, nickName string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pending := lo.Filter(r.entries, func(f model.Friendship, _ int) bool {
		return f.Status == model.FriendshipPending && f.Requestee == nickName
	})
	return lo.Map(pending, func(f model.Friendship, _ int) string { return f.Requester }), nil
}

// indexLocked finds the directed relation requester -> requestee
func (r *MemoryFriendRepository) indexLocked(requester, requestee string) (model.Friendship, int, bool) {
	return lo.FindIndexOf(r.entries, func(f model.Friendship) bool {
		return f.Requester == requester && f.Requestee == requestee
	})
}
