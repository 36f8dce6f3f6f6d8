package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/equipo/internal/domain"
)

type referenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository wires the read-only vocabulary tables.
func NewReferenceRepository(pool *pgxpool.Pool) ReferenceRepository {
	return &referenceRepository{pool: pool}
}

func (r *referenceRepository) Categories(ctx context.Context) ([]domain.ReferenceItem, error) {
	return r.listTable(ctx, "categories")
}

func (r *referenceRepository) Locations(ctx context.Context) ([]domain.ReferenceItem, error) {
	return r.listTable(ctx, "locations")
}

func (r *referenceRepository) CountCategories(ctx context.Context) (int, error) {
	return r.countTable(ctx, "categories")
}

func (r *referenceRepository) CountLocations(ctx context.Context) (int, error) {
	return r.countTable(ctx, "locations")
}

// Seed inserts the fixed vocabularies as one batch. Existing names are left
// alone so seeding stays idempotent across restarts.
func (r *referenceRepository) Seed(ctx context.Context, categories, locations []string) error {
	batch := &pgx.Batch{}
	for _, name := range categories {
		batch.Queue(`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	}
	for _, name := range locations {
		batch.Queue(`INSERT INTO locations (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}
	return nil
}

// listTable serves both vocabularies; table is always one of the two fixed
// names, never caller input.
func (r *referenceRepository) listTable(ctx context.Context, table string) ([]domain.ReferenceItem, error) {
	rows, err := r.pool.Query(
		ctx,
		fmt.Sprintf(`SELECT id, name, description FROM %s ORDER BY name`, table),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	items := []domain.ReferenceItem{}
	for rows.Next() {
		var (
			item        domain.ReferenceItem
			description pgtype.Text
		)
		if scanErr := rows.Scan(&item.ID, &item.Name, &description); scanErr != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, scanErr)
		}
		if description.Valid {
			item.Description = &description.String
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	return items, nil
}

func (r *referenceRepository) countTable(ctx context.Context, table string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
