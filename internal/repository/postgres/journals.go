package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
)

// JournalRepository stores the known-journal catalog with its pre-seeded
// guideline profiles.
type JournalRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewJournalRepository creates a new journal catalog repository
func NewJournalRepository(config *RepositoryConfig) repositories.JournalRepository {
	return &JournalRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert inserts or replaces one catalog entry keyed by journal name.
func (r *JournalRepository) Upsert(ctx context.Context, entry *models.JournalEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, publisher, url, profile, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (name) DO UPDATE
		SET publisher = EXCLUDED.publisher,
			url = EXCLUDED.url,
			profile = EXCLUDED.profile,
			updated_at = now()
	`, r.tables.Journals)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, entry.Name, entry.Publisher, entry.URL, entry.Profile); err != nil {
		return fmt.Errorf("upsert journal %q: %w", entry.Name, err)
	}

	return nil
}

// List returns the full catalog ordered by name.
func (r *JournalRepository) List(ctx context.Context) ([]models.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT name, publisher, url, profile FROM %s ORDER BY name
	`, r.tables.Journals)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.Name, &e.Publisher, &e.URL, &e.Profile); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}

	return entries, nil
}

// GetByName returns one catalog entry.
func (r *JournalRepository) GetByName(ctx context.Context, name string) (*models.JournalEntry, error) {
	query := fmt.Sprintf(`
		SELECT name, publisher, url, profile FROM %s WHERE name = $1
	`, r.tables.Journals)

	var e models.JournalEntry
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, name).Scan(&e.Name, &e.Publisher, &e.URL, &e.Profile)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("journal %q not in catalog", name)}
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}

	return &e, nil
}
