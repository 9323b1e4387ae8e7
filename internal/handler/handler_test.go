package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/forgo/runningmate/internal/middleware"
	"github.com/forgo/runningmate/internal/model"
	"github.com/forgo/runningmate/internal/repository"
	"github.com/forgo/runningmate/internal/service"
	"github.com/forgo/runningmate/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// Test Helpers
// ============================================================================

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

// newTestAPI wires the router over seeded in-memory stores
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	boards := repository.NewMemoryBoardRepository()
	crews := repository.NewMemoryCrewRepository()
	friends := repository.NewMemoryFriendRepository()

	seeder := service.NewSeederService(service.SeederConfig{
		Users: users, Boards: boards, Crews: crews, Friends: friends, BcryptCost: bcrypt.MinCost,
	})
	if _, err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tokens, err := jwt.NewService(jwt.Config{Secret: "handler-test-secret-1", Issuer: "test", ExpirationMins: 60})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	return &testAPI{t: t, handler: NewRouter(RouterConfig{
		Auth:    service.NewAuthService(service.AuthServiceConfig{UserRepo: users, Tokens: tokens, BcryptCost: bcrypt.MinCost}),
		Boards:  service.NewBoardService(boards),
		Crews:   service.NewCrewService(crews),
		Friends: service.NewFriendService(friends, users),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set(middleware.AuthHeader, token)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

// signIn returns a token for a seeded sample account
func (a *testAPI) signIn(nick string) string {
	a.t.Helper()
	rr := a.do(http.MethodPost, "/users/signin", "", model.SignInRequest{
		Email: service.SampleEmail(nick), Password: service.SamplePassword,
	})
	if rr.Code != http.StatusOK {
		a.t.Fatalf("sign in %s: %d %s", nick, rr.Code, rr.Body.String())
	}
	var resp model.SignInResponse
	decode(a.t, rr, &resp)
	return string(resp.Token)
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rr.Code, rr.Body.String())
	}
}

// ============================================================================
// Users
// ============================================================================

func TestSignUpThenSignIn(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(http.MethodPost, "/users/signup", "", model.SignUpRequest{
		Email: "new@example.com", Password: "password1", NickName: "newbie",
	})
	expectStatus(t, rr, http.StatusCreated)

	rr = api.do(http.MethodPost, "/users/signin", "", model.SignInRequest{Email: "new@example.com", Password: "password1"})
	expectStatus(t, rr, http.StatusOK)

	var resp model.SignInResponse
	decode(t, rr, &resp)
	if resp.NickName != "newbie" || resp.Token.IsZero() {
		t.Errorf("unexpected sign-in response: %+v", resp)
	}

	rr = api.do(http.MethodGet, "/users/me", string(resp.Token), nil)
	expectStatus(t, rr, http.StatusOK)
}

func TestSignUp_Errors(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(http.MethodPost, "/users/signup", "", model.SignUpRequest{
		Email: service.SampleEmail("runner01"), Password: "password1", NickName: "someone",
	})
	expectStatus(t, rr, http.StatusConflict)

	rr = api.do(http.MethodPost, "/users/signup", "", model.SignUpRequest{
		Email: "x@example.com", Password: "short", NickName: "someone",
	})
	expectStatus(t, rr, http.StatusUnprocessableEntity)
	var pd model.ProblemDetails
	decode(t, rr, &pd)
	if len(pd.Errors) != 1 || pd.Errors[0].Field != "password" {
		t.Errorf("expected a password field error, got %+v", pd.Errors)
	}

	rr = api.do(http.MethodPost, "/users/signup", "", map[string]string{"unknown": "field"})
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestSignIn_WrongPassword_Returns401(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(http.MethodPost, "/users/signin", "", model.SignInRequest{
		Email: service.SampleEmail("runner01"), Password: "wrong-password",
	})
	expectStatus(t, rr, http.StatusUnauthorized)
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem content type, got %q", ct)
	}
}

// ============================================================================
// Boards
// ============================================================================

func TestListBoards_KeyOrderAndFilter(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(http.MethodGet, "/boards?offset=2&limit=3", "", nil)
	expectStatus(t, rr, http.StatusOK)

	body := rr.Body.String()
	i2, i3, i4 := strings.Index(body, `"2":`), strings.Index(body, `"3":`), strings.Index(body, `"4":`)
	if i2 < 0 || i2 > i3 || i3 > i4 {
		t.Errorf("expected keys 2, 3, 4 in order: %s", body)
	}

	var page model.NoticePage
	decode(t, rr, &page)
	if page.Len() != 3 || page.Notices()[0].ID != 3 {
		t.Errorf("unexpected page: %v", page.Notices())
	}

	rr = api.do(http.MethodGet, "/boards?dou="+url.QueryEscape("부산광역시")+"&limit=10", "", nil)
	expectStatus(t, rr, http.StatusOK)
	decode(t, rr, &page)
	if page.Len() != 2 {
		t.Errorf("expected the two Busan notices, got %d", page.Len())
	}
}

func TestListBoards_BadWindow_Returns422(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(http.MethodGet, "/boards?offset=-1&limit=abc", "", nil)
	expectStatus(t, rr, http.StatusUnprocessableEntity)

	var pd model.ProblemDetails
	decode(t, rr, &pd)
	if len(pd.Errors) != 2 {
		t.Errorf("expected two field errors, got %+v", pd.Errors)
	}
}

func TestBoards_AuthRequired(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/boards/1"},
		{http.MethodPost, "/boards"},
		{http.MethodDelete, "/boards/1"},
	} {
		rr := api.do(tc.method, tc.path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rr.Code)
		}
	}

	rr := api.do(http.MethodGet, "/boards/1", "not-a-token", nil)
	expectStatus(t, rr, http.StatusUnauthorized)
}

func TestBoards_CreateGetDelete(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	owner := api.signIn("runner02")

	rr := api.do(http.MethodPost, "/boards", owner, model.CreateNoticeRequest{
		Notice: model.Notice{
			Title:       "Evening tempo",
			Address:     model.Address{Dou: "서울특별시", Si: "마포구", Gu: "상암동"},
			MeetingTime: "2026-11-02T19:00:00+09:00",
		},
		Author:        "somebody-else",
		BoardCategory: model.BoardCategoryRun,
	})
	expectStatus(t, rr, http.StatusCreated)

	var created model.NoticeSummary
	decode(t, rr, &created)
	if created.ID != 13 || created.Author != "runner02" {
		t.Fatalf("unexpected notice: %+v", created)
	}

	rr = api.do(http.MethodGet, "/boards/13", owner, nil)
	expectStatus(t, rr, http.StatusOK)

	other := api.signIn("runner03")
	rr = api.do(http.MethodDelete, "/boards/13", other, nil)
	expectStatus(t, rr, http.StatusForbidden)

	rr = api.do(http.MethodDelete, "/boards/13", owner, nil)
	expectStatus(t, rr, http.StatusNoContent)

	rr = api.do(http.MethodGet, "/boards/13", owner, nil)
	expectStatus(t, rr, http.StatusNotFound)

	rr = api.do(http.MethodGet, "/boards/zero", owner, nil)
	expectStatus(t, rr, http.StatusUnprocessableEntity)
}

// ============================================================================
// Crews
// ============================================================================

func TestCrews_JoinFlow(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	leader := api.signIn("runner01")
	joiner := api.signIn("runner05")

	rr := api.do(http.MethodPost, "/crews", joiner, model.CreateCrewRequest{CrewName: "한강 러닝 크루"})
	expectStatus(t, rr, http.StatusConflict)

	rr = api.do(http.MethodGet, "/crews", "", nil)
	expectStatus(t, rr, http.StatusOK)
	var list model.CrewList
	decode(t, rr, &list)
	if len(list.Crews) != 1 {
		t.Fatalf("expected the seeded crew, got %+v", list.Crews)
	}
	crewPath := "/crews/" + strconv.FormatInt(list.Crews[0].ID, 10)

	expectStatus(t, api.do(http.MethodPost, crewPath+"/requests", joiner, nil), http.StatusNoContent)
	expectStatus(t, api.do(http.MethodPost, crewPath+"/requests", joiner, nil), http.StatusConflict)

	permit := model.ManageJoinRequest{NickName: "runner05", RequestRole: model.RolePermit}
	expectStatus(t, api.do(http.MethodPut, crewPath+"/requests", joiner, permit), http.StatusForbidden)
	expectStatus(t, api.do(http.MethodPut, crewPath+"/requests", leader, permit), http.StatusNoContent)

	rr = api.do(http.MethodGet, crewPath, "", nil)
	expectStatus(t, rr, http.StatusOK)
	var crew model.Crew
	decode(t, rr, &crew)
	if !crew.HasMember("runner05") || crew.HasRequest("runner05") {
		t.Errorf("runner05 should be a member: %+v", crew)
	}
	if !crew.HasRequest("runner02") {
		t.Errorf("the seeded request from runner02 should still be pending")
	}

	expectStatus(t, api.do(http.MethodGet, "/crews/99", "", nil), http.StatusNotFound)
}

// ============================================================================
// Friends
// ============================================================================

func TestFriends_PermitPendingRequest(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	me := api.signIn("runner01")

	rr := api.do(http.MethodGet, "/friends/requests", me, nil)
	expectStatus(t, rr, http.StatusOK)
	var pending model.FriendRequests
	decode(t, rr, &pending)
	if len(pending.RequestFriendList) != 2 {
		t.Fatalf("expected runner02 and runner03 waiting, got %v", pending.RequestFriendList)
	}

	rr = api.do(http.MethodPost, "/friends", me, model.FriendRequest{RequesteeName: "runner02", RequestRole: model.RolePermit})
	expectStatus(t, rr, http.StatusNoContent)
	rr = api.do(http.MethodPost, "/friends", me, model.FriendRequest{RequesteeName: "runner03", RequestRole: model.RoleDismiss})
	expectStatus(t, rr, http.StatusNoContent)

	rr = api.do(http.MethodGet, "/friends", me, nil)
	expectStatus(t, rr, http.StatusOK)
	var friends model.Friends
	decode(t, rr, &friends)
	if len(friends.FriendList) != 2 {
		t.Errorf("expected runner04 and runner02, got %v", friends.FriendList)
	}

	rr = api.do(http.MethodGet, "/friends/requests", me, nil)
	decode(t, rr, &pending)
	if pending.RequestFriendList == nil || len(pending.RequestFriendList) != 0 {
		t.Errorf("expected an empty list, got %v", pending.RequestFriendList)
	}
}

func TestFriends_Errors(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	me := api.signIn("runner01")

	tests := []struct {
		req  model.FriendRequest
		want int
	}{
		{model.FriendRequest{RequesteeName: "runner01", RequestRole: model.RoleRequest}, http.StatusUnprocessableEntity},
		{model.FriendRequest{RequesteeName: "ghost", RequestRole: model.RoleRequest}, http.StatusNotFound},
		{model.FriendRequest{RequesteeName: "runner04", RequestRole: model.RoleRequest}, http.StatusConflict},
		{model.FriendRequest{RequesteeName: "runner09", RequestRole: model.RolePermit}, http.StatusNotFound},
		{model.FriendRequest{RequesteeName: "runner09", RequestRole: "poke"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		rr := api.do(http.MethodPost, "/friends", me, tt.req)
		if rr.Code != tt.want {
			t.Errorf("%+v: expected %d, got %d", tt.req, tt.want, rr.Code)
		}
	}

	expectStatus(t, api.do(http.MethodGet, "/friends", "", nil), http.StatusUnauthorized)
}

func TestHealth_ReportsStorage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Health(nil)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	expectStatus(t, rr, http.StatusOK)

	down := func(context.Context) error { return errors.New("dial tcp: refused") }
	rr = httptest.NewRecorder()
	Health(down)(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	expectStatus(t, rr, http.StatusServiceUnavailable)

	var body map[string]string
	decode(t, rr, &body)
	if body["status"] != "degraded" {
		t.Errorf("expected degraded status, got %v", body)
	}
}
