package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forgo/runningmate/internal/database"
	"github.com/forgo/runningmate/internal/model"
)

// BoardRepository handles board post data access
type BoardRepository struct {
	db database.Database
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db database.Database) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create stores a board post. A zero ID is assigned from the counter; seeded
// posts keep their own.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if board.ID == 0 {
		num, err := database.NextID(ctx, r.db, "board")
		if err != nil {
			return err
		}
		board.ID = num
	} else if err := database.RaiseCounter(ctx, r.db, "board", board.ID); err != nil {
		return err
	}

	meetingAt := ""
	if t, ok := board.MeetingAt(); ok {
		meetingAt = t.Format(time.RFC3339)
	}

	query := `
		CREATE type::thing('board', $num) CONTENT {
			num: $num,
			title: $title,
			content: $content,
			address: $address,
			meeting_time: $meeting_time,
			meeting_at: IF $meeting_at THEN <datetime>$meeting_at ELSE NONE END,
			open_chat: $open_chat,
			image: $image,
			reg_date: $reg_date,
			count: $count,
			closed: $closed,
			author: $author,
			author_id: $author_id,
			board_category: $board_category,
			created_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"num":     board.ID,
		"title":   board.Title,
		"content": board.Content,
		"address": map[string]interface{}{
			"dou": board.Address.Dou,
			"si":  board.Address.Si,
			"gu":  board.Address.Gu,
		},
		"meeting_time":   board.MeetingTime,
		"meeting_at":     meetingAt,
		"open_chat":      board.OpenChat,
		"image":          board.Image,
		"reg_date":       board.RegDate,
		"count":          board.Count,
		"closed":         board.Closed,
		"author":         board.Author,
		"author_id":      board.AuthorID,
		"board_category": board.BoardCategory,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: board %d already exists", database.ErrDuplicate, board.ID)
		}
		return err
	}
	rows := extractQueryResults(result)
	if len(rows) == 0 {
		return fmt.Errorf("%w: create board returned no record", database.ErrQuery)
	}
	*board = *parseBoard(rows[0])
	return nil
}

// GetByID retrieves a board post by ID
func (r *BoardRepository) GetByID(ctx context.Context, id int64) (*model.Board, error) {
	result, err := r.db.QueryOne(ctx, "SELECT * FROM type::thing('board', $num)", map[string]interface{}{"num": id})
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
	return parseBoard(m), nil
}

// List returns posts matching the filter address in ID order, windowed by
// offset and limit. Empty address levels match every post.
func (r *BoardRepository) List(ctx context.Context, filter model.BoardFilter) ([]*model.Board, error) {
	query := `
		SELECT * FROM board
		WHERE ($dou = '' OR string::lowercase(address.dou) = string::lowercase($dou))
			AND ($si = '' OR string::lowercase(address.si) = string::lowercase($si))
			AND ($gu = '' OR string::lowercase(address.gu) = string::lowercase($gu))
		ORDER BY num ASC
		LIMIT $limit START $offset
	`
	vars := map[string]interface{}{
		"dou":    filter.Address.Dou,
		"si":     filter.Address.Si,
		"gu":     filter.Address.Gu,
		"offset": filter.Offset,
		"limit":  filter.Limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	rows := extractQueryResults(result)
	boards := make([]*model.Board, 0, len(rows))
	for _, row := range rows {
		boards = append(boards, parseBoard(row))
	}
	return boards, nil
}

// Delete removes a board post
func (r *BoardRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Execute(ctx, "DELETE type::thing('board', $num)", map[string]interface{}{"num": id})
}

// CloseBefore marks open posts whose meeting time is before now as closed and
// returns how many changed
func (r *BoardRepository) CloseBefore(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE board SET closed = true
		WHERE closed = false AND meeting_at != NONE AND meeting_at < <datetime>$now
		RETURN AFTER
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"now": now.Format(time.RFC3339)})
	if err != nil {
		return 0, err
	}
	return len(extractQueryResults(result)), nil
}

func parseBoard(m map[string]interface{}) *model.Board {
	addr := getMap(m, "address")
	return &model.Board{
		NoticeSummary: model.NoticeSummary{
			ID:      getInt64(m, "num"),
			Title:   getString(m, "title"),
			Content: getString(m, "content"),
			Address: model.Address{
				Dou: getString(addr, "dou"),
				Si:  getString(addr, "si"),
				Gu:  getString(addr, "gu"),
			},
			MeetingTime: getString(m, "meeting_time"),
			OpenChat:    getString(m, "open_chat"),
			Image:       getString(m, "image"),
			RegDate:     getString(m, "reg_date"),
			Count:       getInt(m, "count"),
			Closed:      getBool(m, "closed"),
			Author:      getString(m, "author"),
		},
		BoardCategory: getString(m, "board_category"),
		AuthorID:      getInt64(m, "author_id"),
		CreatedOn:     getTime(m, "created_on"),
	}
}
