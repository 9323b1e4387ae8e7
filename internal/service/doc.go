// Package service implements the business logic layer of the RunningMate API.
//
// Services hold validation rules and orchestrate repository calls. HTTP
// handlers talk only to services; services talk only to the repository
// interfaces they declare, so the in-memory and SurrealDB stores are
// interchangeable.
//
// # Service Pattern
//
//   - NewXxxService takes its repositories (or a config struct when there are several)
//   - Operations that act on behalf of a signed-in user take a Caller
//   - Failures are sentinel errors from errors.go, mapped to HTTP by the handler package
//
// # Example Usage
//
//	boards := service.NewBoardService(repository.NewMemoryBoardRepository())
//	notice, err := boards.Create(ctx, service.Caller{ID: 1, NickName: "kim"}, req)
package service
