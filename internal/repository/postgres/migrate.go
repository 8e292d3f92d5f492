package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the prefixed tables if they do not exist. Idempotent;
// safe to run at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id TEXT NOT NULL,
				journal_name TEXT NOT NULL DEFAULT '',
				language TEXT NOT NULL DEFAULT 'en',
				file_name TEXT NOT NULL,
				mime_type TEXT NOT NULL,
				file_size BIGINT NOT NULL,
				object_key TEXT NOT NULL,
				status TEXT NOT NULL,
				original_content TEXT NOT NULL DEFAULT '',
				processed_content TEXT NOT NULL DEFAULT '',
				saved_content TEXT NOT NULL DEFAULT '',
				guidelines_applied JSONB,
				ai_suggestions TEXT[],
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Documents),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_user_idx ON %s (user_id, created_at DESC)
		`, tables.Documents, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				name TEXT PRIMARY KEY,
				publisher TEXT NOT NULL DEFAULT '',
				url TEXT NOT NULL DEFAULT '',
				profile JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Journals),
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}

// DropTables removes the prefixed tables. Used by guidectl reset for
// dev/test environments.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Documents, tables.Journals} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
