// Package repository implements the data access layer of the RunningMate API.
//
// Every store comes in two drivers with the same method set:
//
//   - UserRepository, BoardRepository, CrewRepository and FriendRepository run
//     SurrealQL against a database.Database
//   - MemoryUserRepository and friends keep records in process, for the default
//     memory driver and for tests
//
// # Conventions
//
//   - Missing records are (nil, nil), not an error
//   - Unique index violations wrap database.ErrDuplicate
//   - Record ids are numeric: type::thing('board', $id), allocated from the counter table
//   - Queries are parameterized with $variables
//
// Crew members and join requesters are stored inline on the crew record as
// {id, nick_name} objects; friend relations are keyed by nickname.
package repository
