// Package route maps URL paths to client views and carries navigation commands.
//
// Matching follows the browser router the client was built against: every route
// is exact, static segments compare case-insensitively, a trailing slash is
// ignored, and the first matching route in table order wins.
package route

import (
	"net/url"
	"strconv"
	"strings"
)

// View names a page of the client
type View string

const (
	ViewHome           View = "home"
	ViewGuest          View = "guest"
	ViewMyPage         View = "myPage"
	ViewCreateCrew     View = "createCrew"
	ViewCrewList       View = "crewList"
	ViewCrewDetail     View = "crewDetail"
	ViewCrewManagement View = "crewManagement"
	ViewNotice         View = "notice"
	ViewCreateNotice   View = "createNotice"
	ViewUserInfo       View = "userInfo"
)

// Route binds a path template to a view. Parameter segments start with ':'.
type Route struct {
	Pattern string
	View    View
}

// Routes is the client routing table in match order.
// Both crew management paths lead to the same view.
var Routes = []Route{
	{Pattern: "/", View: ViewHome},
	{Pattern: "/guest", View: ViewGuest},
	{Pattern: "/myPage", View: ViewMyPage},
	{Pattern: "/crew/new", View: ViewCreateCrew},
	{Pattern: "/myPage/changePassword", View: ViewMyPage},
	{Pattern: "/myPage/leaving", View: ViewMyPage},
	{Pattern: "/myPage/friends/list", View: ViewMyPage},
	{Pattern: "/myPage/friends/requests", View: ViewMyPage},
	{Pattern: "/crew", View: ViewCrewList},
	{Pattern: "/crew/:id", View: ViewCrewDetail},
	{Pattern: "/crew/:id/management", View: ViewCrewManagement},
	{Pattern: "/crew/:id/peopleManagement", View: ViewCrewManagement},
	{Pattern: "/notice/:noticeId", View: ViewNotice},
	{Pattern: "/notice-create", View: ViewCreateNotice},
	{Pattern: "/userInfo", View: ViewUserInfo},
}

// Match is the result of resolving a path
type Match struct {
	Route  Route
	Params map[string]string
	Query  url.Values
}

// Param returns a path parameter, or "" when absent
func (m Match) Param(name string) string {
	return m.Params[name]
}

// IntParam parses a numeric path parameter
func (m Match) IntParam(name string) (int64, error) {
	return strconv.ParseInt(m.Params[name], 10, 64)
}

type compiled struct {
	route    Route
	segments []string
}

// Table resolves paths against a list of routes
type Table struct {
	routes []compiled
}

// NewTable compiles routes in the given order
func NewTable(routes []Route) *Table {
	t := &Table{routes: make([]compiled, 0, len(routes))}
	for _, r := range routes {
		t.routes = append(t.routes, compiled{route: r, segments: split(r.Pattern)})
	}
	return t
}

// Default returns a table over Routes
func Default() *Table {
	return NewTable(Routes)
}

// Match resolves a path, which may carry a query string
func (t *Table) Match(rawPath string) (Match, bool) {
	path, rawQuery, _ := strings.Cut(rawPath, "?")
	query, _ := url.ParseQuery(rawQuery)
	segs := split(path)

	for _, c := range t.routes {
		params, ok := matchSegments(c.segments, segs)
		if ok {
			return Match{Route: c.route, Params: params, Query: query}, true
		}
	}
	return Match{}, false
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := make(map[string]string)
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if segs[i] == "" {
				return nil, false
			}
			value, err := url.PathUnescape(segs[i])
			if err != nil {
				return nil, false
			}
			params[name] = value
			continue
		}
		if !strings.EqualFold(p, segs[i]) {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return []string{}
	}
	return strings.Split(path, "/")
}

// Path builders for parameterized routes

func CrewPath(id int64) string {
	return "/crew/" + strconv.FormatInt(id, 10)
}

func CrewManagementPath(id int64) string {
	return CrewPath(id) + "/management"
}

func NoticePath(id int64) string {
	return "/notice/" + strconv.FormatInt(id, 10)
}

const (
	HomePath           = "/"
	GuestPath          = "/guest"
	CrewListPath       = "/crew"
	NewCrewPath        = "/crew/new"
	FriendListPath     = "/myPage/friends/list"
	FriendRequestsPath = "/myPage/friends/requests"
	CreateNoticePath   = "/notice-create"
)
