package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/runningmate/internal/middleware"
	"github.com/forgo/runningmate/internal/service"
)

// RouterConfig holds the services behind the API routes
type RouterConfig struct {
	Auth           *service.AuthService
	Boards         *service.BoardService
	Crews          *service.CrewService
	Friends        *service.FriendService
	Logger         *slog.Logger
	AllowedOrigins []string

	// Ping reports storage health on GET /health; nil means always healthy
	Ping func(ctx context.Context) error
}

// NewRouter registers every API route and wraps the mux in the global
// middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	users := NewUserHandler(cfg.Auth)
	boards := NewBoardHandler(cfg.Boards)
	crews := NewCrewHandler(cfg.Crews)
	friends := NewFriendHandler(cfg.Friends)

	auth := middleware.Auth(cfg.Auth)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health(cfg.Ping))

	// Account endpoints
	mux.HandleFunc("POST /users/signup", users.SignUp)
	mux.HandleFunc("POST /users/signin", users.SignIn)
	mux.Handle("GET /users/me", protected(users.Me))

	// Notice board endpoints
	mux.HandleFunc("GET /boards", boards.List)
	mux.Handle("POST /boards", protected(boards.Create))
	mux.Handle("GET /boards/{id}", protected(boards.Get))
	mux.Handle("DELETE /boards/{id}", protected(boards.Delete))

	// Crew endpoints
	mux.HandleFunc("GET /crews", crews.List)
	mux.HandleFunc("GET /crews/{id}", crews.Get)
	mux.Handle("POST /crews", protected(crews.Create))
	mux.Handle("POST /crews/{id}/requests", protected(crews.RequestJoin))
	mux.Handle("PUT /crews/{id}/requests", protected(crews.ManageRequest))

	// Friend endpoints
	mux.Handle("GET /friends", protected(friends.List))
	mux.Handle("GET /friends/requests", protected(friends.Requests))
	mux.Handle("POST /friends", protected(friends.Handle))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(cfg.Logger),
		middleware.Recovery,
		middleware.CORS(origins),
	)
}

const healthPingTimeout = 2 * time.Second

// Health returns the GET /health handler. It answers 503 while ping fails.
func Health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				slog.WarnContext(r.Context(), "storage ping failed", slog.String("error", err.Error()))
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
