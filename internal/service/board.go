package service

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/forgo/runningmate/internal/model"
)

// BoardRepository defines the interface for board post storage
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id int64) (*model.Board, error)
	List(ctx context.Context, filter model.BoardFilter) ([]*model.Board, error)
	Delete(ctx context.Context, id int64) error
	CloseBefore(ctx context.Context, now time.Time) (int, error)
}

// BoardService handles board posts (notices)
type BoardService struct {
	repo BoardRepository
	now  func() time.Time
}

// NewBoardService creates a new board service
func NewBoardService(repo BoardRepository) *BoardService {
	return &BoardService{repo: repo, now: time.Now}
}

// List returns the posts matching filter as the keyed listing envelope. Keys are
// the absolute positions of the entries in the filtered listing.
func (s *BoardService) List(ctx context.Context, filter model.BoardFilter) (model.NoticePage, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit, model.DefaultBoardsPageSize, model.MaxBoardsPageSize)

	boards, err := s.repo.List(ctx, filter)
	if err != nil {
		return model.NoticePage{}, err
	}

	entries := make([]model.NoticeEntry, 0, len(boards))
	for i, b := range boards {
		entries = append(entries, model.NoticeEntry{
			Key:    strconv.Itoa(filter.Offset + i),
			Notice: b.NoticeSummary,
		})
	}
	return model.NewNoticePage(entries...), nil
}

// Get returns one post
func (s *BoardService) Get(ctx context.Context, id int64) (*model.NoticeSummary, error) {
	board, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	return &board.NoticeSummary, nil
}

// Create publishes a post authored by caller. The author named in the request
// body is ignored.
func (s *BoardService) Create(ctx context.Context, caller Caller, req model.CreateNoticeRequest) (*model.NoticeSummary, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	category := req.BoardCategory
	if category == "" {
		category = model.BoardCategoryRun
	}
	if category != model.BoardCategoryRun {
		return nil, ErrInvalidCategory
	}

	board := &model.Board{
		NoticeSummary: model.NoticeSummary{
			Title:       title,
			Content:     req.Content,
			Address:     req.Address,
			MeetingTime: strings.TrimSpace(req.MeetingTime),
			OpenChat:    req.OpenChat,
			Image:       req.Image,
			RegDate:     s.now().Format(time.RFC3339),
			Author:      caller.NickName,
		},
		BoardCategory: category,
		AuthorID:      caller.ID,
	}
	if board.MeetingTime != "" {
		if _, ok := board.MeetingAt(); !ok {
			return nil, ErrInvalidMeetingTime
		}
	}

	if err := s.repo.Create(ctx, board); err != nil {
		return nil, err
	}
	return &board.NoticeSummary, nil
}

// Delete removes a post written by caller
func (s *BoardService) Delete(ctx context.Context, caller Caller, id int64) error {
	board, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrBoardNotFound
	}
	if board.AuthorID != caller.ID {
		return ErrNotBoardAuthor
	}
	return s.repo.Delete(ctx, id)
}

// CloseExpired closes every open post whose meeting time has passed
func (s *BoardService) CloseExpired(ctx context.Context) (int, error) {
	return s.repo.CloseBefore(ctx, s.now())
}

// clampPage applies the default page size and the upper bound
func clampPage(offset, limit, def, max int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return offset, limit
}
