package database

import (
	"context"
	"fmt"
)

// schema declares tables and the unique indexes repositories depend on.
// Records use numeric ids taken from the counter table.
var schema = []string{
	"DEFINE TABLE IF NOT EXISTS counter SCHEMALESS",

	"DEFINE TABLE IF NOT EXISTS user SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS user_email ON TABLE user COLUMNS email UNIQUE",
	"DEFINE INDEX IF NOT EXISTS user_nick_name ON TABLE user COLUMNS nick_name UNIQUE",

	"DEFINE TABLE IF NOT EXISTS board SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS board_num ON TABLE board COLUMNS num UNIQUE",

	"DEFINE TABLE IF NOT EXISTS crew SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS crew_name ON TABLE crew COLUMNS crew_name UNIQUE",

	"DEFINE TABLE IF NOT EXISTS friendship SCHEMALESS",
	"DEFINE INDEX IF NOT EXISTS friendship_pair ON TABLE friendship COLUMNS requester, requestee UNIQUE",
}

// DefineSchema creates tables and indexes that do not exist yet
func DefineSchema(ctx context.Context, db Database) error {
	for _, stmt := range schema {
		if err := db.Execute(ctx, stmt, nil); err != nil {
			return fmt.Errorf("define schema: %w", err)
		}
	}
	return nil
}

// NextID increments and returns the counter for table
func NextID(ctx context.Context, db Database, table string) (int64, error) {
	result, err := db.QueryOne(ctx,
		"UPSERT type::thing('counter', $table) SET value += 1 RETURN AFTER",
		map[string]interface{}{"table": table},
	)
	if err != nil {
		return 0, err
	}
	m, ok := result.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("%w: unexpected counter result", ErrQuery)
	}
	switch v := m["value"].(type) {
	case uint64:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	}
	return 0, fmt.Errorf("%w: counter value missing", ErrQuery)
}

// RaiseCounter makes sure the counter for table is at least atLeast, so records
// stored with explicit ids are never handed out again by NextID
func RaiseCounter(ctx context.Context, db Database, table string, atLeast int64) error {
	return db.Execute(ctx,
		"UPSERT type::thing('counter', $table) SET value = math::max([value OR 0, $at_least])",
		map[string]interface{}{"table": table, "at_least": atLeast},
	)
}
