package model

import (
	"strings"
	"time"
)

// BoardCategoryRun is the only board category the client posts under.
const BoardCategoryRun = "RUN"

// Address locates a notice. Dou is the region, Si the city or district and Gu the
// sub-district.
type Address struct {
	Dou string `json:"dou"`
	Si  string `json:"si"`
	Gu  string `json:"gu"`
}

// IsZero returns true if no address level is set
func (a Address) IsZero() bool {
	return a.Dou == "" && a.Si == "" && a.Gu == ""
}

// Matches reports whether a satisfies filter. Empty filter levels match anything and
// set levels are combined conjunctively.
func (a Address) Matches(filter Address) bool {
	if filter.Dou != "" && !strings.EqualFold(a.Dou, filter.Dou) {
		return false
	}
	if filter.Si != "" && !strings.EqualFold(a.Si, filter.Si) {
		return false
	}
	if filter.Gu != "" && !strings.EqualFold(a.Gu, filter.Gu) {
		return false
	}
	return true
}

// Notice is the payload a user submits to create a board post
type Notice struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Address     Address `json:"address"`
	MeetingTime string  `json:"meetingTime"`
	OpenChat    string  `json:"openChat"`
	Image       string  `json:"image"`
}

// CreateNoticeRequest is the body of POST /boards
type CreateNoticeRequest struct {
	Notice
	Author        string `json:"author"`
	BoardCategory string `json:"boardCategory"`
}

// NoticeSummary is one board post as returned by the listing and detail endpoints
type NoticeSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Address     Address `json:"address"`
	MeetingTime string  `json:"meetingTime"`
	OpenChat    string  `json:"openChat"`
	Image       string  `json:"image"`
	RegDate     string  `json:"regDate"`
	Count       int     `json:"count"`
	Closed      bool    `json:"closed"`
	Author      string  `json:"author,omitempty"`
}

// NoticeBoard is the client-side state of the notice slice
type NoticeBoard struct {
	Page    NoticePage    `json:"page"`
	Current NoticeSummary `json:"current"`
}

// Without returns a copy of the board with the notice id removed from the page.
// The current notice is cleared when it is the removed one.
func (b NoticeBoard) Without(id int64) NoticeBoard {
	out := NoticeBoard{Page: b.Page.Filter(func(n NoticeSummary) bool { return n.ID != id }), Current: b.Current}
	if out.Current.ID == id {
		out.Current = NoticeSummary{}
	}
	return out
}

// Board is a stored board post. AuthorID owns the post; Author in the summary is
// the author's nickname.
type Board struct {
	NoticeSummary
	BoardCategory string    `json:"boardCategory"`
	AuthorID      int64     `json:"-"`
	CreatedOn     time.Time `json:"-"`
}

// MeetingAt parses MeetingTime as RFC 3339
func (b Board) MeetingAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, b.MeetingTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BoardFilter scopes a board listing
type BoardFilter struct {
	Address Address
	Offset  int
	Limit   int
}

// Board listing constraints
const (
	DefaultBoardsPageSize = 6
	MaxBoardsPageSize     = 100
	MaxTitleLength        = 100
)
