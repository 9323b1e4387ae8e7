// Package handler provides the HTTP handlers of the RunningMate API.
//
// Each handler struct wraps one service. Successful responses are the raw JSON
// resource the client decodes, with no envelope; failures are RFC 9457 Problem
// Details produced by MapServiceError.
//
// # Routes
//
//	POST   /users/signup           create an account
//	POST   /users/signin           exchange credentials for a token
//	GET    /boards                 ordered keyed listing, filters dou/si/gu, window offset/limit
//	GET    /boards/{id}            one notice (auth)
//	POST   /boards                 create a notice (auth)
//	DELETE /boards/{id}            delete a notice (auth, author only)
//	GET    /crews, /crews/{id}     crew listing and detail
//	POST   /crews                  create a crew (auth)
//	POST   /crews/{id}/requests    ask to join (auth)
//	PUT    /crews/{id}/requests    permit or dismiss a join request (auth, leader only)
//	GET    /friends                friend list (auth)
//	GET    /friends/requests       pending friend requests (auth)
//	POST   /friends                request, permit or dismiss (auth)
//
// Authenticated routes read the raw token from the x-auth-token header.
package handler
