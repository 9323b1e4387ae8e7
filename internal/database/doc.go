// Package database provides SurrealDB connectivity for the runningmate API server.
//
// The Database interface offers three query methods:
//   - Query: one {status, result} entry per statement
//   - QueryOne: the first record of the first statement, or ErrNotFound
//   - Execute: no return value (for CREATE/UPDATE/DELETE mutations)
//
// # Atomic Writes
//
// Statements that must succeed together go through AtomicBatch. The batch is
// sent as one BEGIN TRANSACTION / COMMIT TRANSACTION block; variables of each
// statement are namespaced so two statements may both use $id:
//
//	err := database.NewAtomicBatch().
//	    Add("UPDATE type::thing('crew', $id) SET request_users = $requests", vars1).
//	    Add("UPDATE type::thing('crew', $id) SET user_dtos += $user", vars2).
//	    Execute(ctx, db)
//
// # Schema
//
// DefineSchema declares the tables and unique indexes the repositories rely on.
// It is idempotent and runs on every server start.
//
// # Error Handling
//
// ErrNotFound, ErrDuplicate, ErrConnection and ErrQuery wrap driver errors:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database
