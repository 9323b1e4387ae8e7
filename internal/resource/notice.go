package resource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/forgo/runningmate/internal/model"
)

// NoticeQuery scopes a notice listing
type NoticeQuery struct {
	Address model.Address
	Offset  int
	Limit   int
}

func (q NoticeQuery) values() url.Values {
	v := url.Values{}
	if q.Address.Dou != "" {
		v.Set("dou", q.Address.Dou)
	}
	if q.Address.Si != "" {
		v.Set("si", q.Address.Si)
	}
	if q.Address.Gu != "" {
		v.Set("gu", q.Address.Gu)
	}
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}

// NoticeService talks to /boards
type NoticeService struct {
	client *Client
}

// NewNoticeService creates a notice service
func NewNoticeService(client *Client) *NoticeService {
	return &NoticeService{client: client}
}

// CreateNotice posts a notice under author
func (s *NoticeService) CreateNotice(ctx context.Context, token model.Token, notice model.Notice, author string) (model.NoticeSummary, error) {
	body := model.CreateNoticeRequest{
		Notice:        notice,
		Author:        author,
		BoardCategory: model.BoardCategoryRun,
	}

	var created model.NoticeSummary
	err := s.client.do(ctx, call{method: http.MethodPost, path: "/boards", token: token, body: body}, &created)
	if err != nil {
		return model.NoticeSummary{}, s.client.fail(ctx, "create notice", ErrCreateFailed, err)
	}
	return created, nil
}

// ListNotices lists notices matching the query address
func (s *NoticeService) ListNotices(ctx context.Context, q NoticeQuery) (model.NoticePage, error) {
	var page model.NoticePage
	err := s.client.do(ctx, call{method: http.MethodGet, path: "/boards", query: q.values()}, &page)
	if err != nil {
		return model.NoticePage{}, s.client.fail(ctx, "list notices", ErrFetchFailed, err)
	}
	return page, nil
}

// ListAllNotices lists notices without an address filter
func (s *NoticeService) ListAllNotices(ctx context.Context, offset, limit int) (model.NoticePage, error) {
	return s.ListNotices(ctx, NoticeQuery{Offset: offset, Limit: limit})
}

// GetNotice fetches one notice
func (s *NoticeService) GetNotice(ctx context.Context, id int64, token model.Token) (model.NoticeSummary, error) {
	var notice model.NoticeSummary
	err := s.client.do(ctx, call{method: http.MethodGet, path: boardPath(id), token: token}, &notice)
	if err != nil {
		return model.NoticeSummary{}, s.client.fail(ctx, "get notice", ErrFetchFailed, err)
	}
	return notice, nil
}

// DeleteNotice removes a notice and returns true on success
func (s *NoticeService) DeleteNotice(ctx context.Context, id int64, token model.Token) (bool, error) {
	err := s.client.do(ctx, call{method: http.MethodDelete, path: boardPath(id), token: token}, nil)
	if err != nil {
		return false, s.client.fail(ctx, "delete notice", ErrDeleteFailed, err)
	}
	return true, nil
}

// SampleNotices windows the bundled sample board without a network call
func (s *NoticeService) SampleNotices(offset, limit int) model.NoticePage {
	return model.SampleBoard().Window(offset, limit)
}

func boardPath(id int64) string {
	return "/boards/" + strconv.FormatInt(id, 10)
}
