// Package middleware provides HTTP middleware for the RunningMate API.
//
// # Available Middleware
//
//   - RequestID: keeps or assigns X-Request-ID
//   - Logger: one structured log line per request
//   - Recovery: panics become a 500 problem response
//   - CORS: origin allow list and preflight handling
//   - Auth / OptionalAuth: token validation on the x-auth-token header
//
// Compose them with Chain; the first middleware listed runs first:
//
//	h := middleware.Chain(mux, middleware.RequestID, middleware.Logger(logger), middleware.Recovery)
//
// # Context Values
//
// After Auth, handlers read the caller with GetClaims, GetUserID and
// GetNickName, and every handler can read GetRequestID.
package middleware
