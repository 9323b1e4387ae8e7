package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
	"github.com/samber/lo"
)

// CrewRepository handles crew data access. Members and join requesters are
// stored on the crew record as {id, nick_name} objects.
type CrewRepository struct {
	db database.Database
}

// NewCrewRepository creates a new crew repository
func NewCrewRepository(db database.Database) *CrewRepository {
	return &CrewRepository{db: db}
}

// Create stores a crew and assigns its ID
func (r *CrewRepository) Create(ctx context.Context, crew *model.Crew) error {
	num, err := database.NextID(ctx, r.db, "crew")
	if err != nil {
		return err
	}

	query := `
		CREATE type::thing('crew', $num) CONTENT {
			num: $num,
			crew_name: $crew_name,
			crew_region: $crew_region,
			open_chat: $open_chat,
			explanation: $explanation,
			crew_leader_id: $crew_leader_id,
			user_dtos: $user_dtos,
			request_users: $request_users,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"num":            num,
		"crew_name":      crew.CrewName,
		"crew_region":    crew.CrewRegion,
		"open_chat":      crew.OpenChat,
		"explanation":    crew.Explanation,
		"crew_leader_id": crew.CrewLeaderID,
		"user_dtos":      lo.Map(crew.UserDtos, toUserRecord),
		"request_users":  lo.Map(crew.RequestUsers, toUserRecord),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: crew name already exists", database.ErrDuplicate)
		}
		return err
	}
	rows := extractQueryResults(result)
	if len(rows) == 0 {
		return fmt.Errorf("%w: create crew returned no record", database.ErrQuery)
	}
	*crew = *parseCrew(rows[0])
	return nil
}

// GetByID retrieves a crew by ID
func (r *CrewRepository) GetByID(ctx context.Context, id int64) (*model.Crew, error) {
	return r.getOne(ctx, "SELECT * FROM type::thing('crew', $num)", map[string]interface{}{"num": id})
}

// GetByName retrieves a crew by name
func (r *CrewRepository) GetByName(ctx context.Context, name string) (*model.Crew, error) {
	return r.getOne(ctx, "SELECT * FROM crew WHERE crew_name = $name LIMIT 1", map[string]interface{}{"name": name})
}

// List returns crews in ID order, windowed by offset and limit
func (r *CrewRepository) List(ctx context.Context, offset, limit int) ([]*model.Crew, error) {
	result, err := r.db.Query(ctx,
		"SELECT * FROM crew ORDER BY num ASC LIMIT $limit START $offset",
		map[string]interface{}{"offset": offset, "limit": limit},
	)
	if err != nil {
		return nil, err
	}
	return lo.Map(extractQueryResults(result), func(row map[string]interface{}, _ int) *model.Crew {
		return parseCrew(row)
	}), nil
}

// AddRequest records a pending join request
func (r *CrewRepository) AddRequest(ctx context.Context, crewID int64, user model.UserDto) error {
	return r.db.Execute(ctx,
		"UPDATE type::thing('crew', $num) SET request_users += $user",
		map[string]interface{}{"num": crewID, "user": toUserRecord(user, 0)},
	)
}

// RemoveRequest drops a pending join request
func (r *CrewRepository) RemoveRequest(ctx context.Context, crewID, userID int64) error {
	return r.db.Execute(ctx,
		"UPDATE type::thing('crew', $num) SET request_users = request_users[WHERE id != $uid]",
		map[string]interface{}{"num": crewID, "uid": userID},
	)
}

// Admit moves a requester into the member list in one transaction
func (r *CrewRepository) Admit(ctx context.Context, crewID int64, user model.UserDto) error {
	return database.NewAtomicBatch().
		Add("UPDATE type::thing('crew', $num) SET request_users = request_users[WHERE id != $uid]",
			map[string]interface{}{"num": crewID, "uid": user.ID}).
		Add("UPDATE type::thing('crew', $num) SET user_dtos += $user",
			map[string]interface{}{"num": crewID, "user": toUserRecord(user, 0)}).
		Execute(ctx, r.db)
}

func (r *CrewRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.Crew, error) {
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
	return parseCrew(m), nil
}

func toUserRecord(u model.UserDto, _ int) map[string]interface{} {
	return map[string]interface{}{"id": u.ID, "nick_name": u.NickName}
}

func parseUserRecord(m map[string]interface{}, _ int) model.UserDto {
	return model.UserDto{ID: getInt64(m, "id"), NickName: getString(m, "nick_name")}
}

func parseCrew(m map[string]interface{}) *model.Crew {
	crew := model.Crew{
		ID:           getInt64(m, "num"),
		CrewLeaderID: getInt64(m, "crew_leader_id"),
		CrewRegion:   getString(m, "crew_region"),
		OpenChat:     getString(m, "open_chat"),
		CrewName:     getString(m, "crew_name"),
		Explanation:  getString(m, "explanation"),
		UserDtos:     lo.Map(getMaps(m, "user_dtos"), parseUserRecord),
		RequestUsers: lo.Map(getMaps(m, "request_users"), parseUserRecord),
	}.Normalize()
	return &crew
}
