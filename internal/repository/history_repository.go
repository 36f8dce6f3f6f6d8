package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/equipo/internal/domain"
)

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository wires the append-only ledger backed by pgxpool.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

// Record appends one ledger entry; the database sets the timestamp. There is
// deliberately no update or delete path on this table.
func (r *historyRepository) Record(ctx context.Context, equipmentID int64, action domain.Action, oldValues, newValues *string) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO equipment_history (equipment_id, action, old_values, new_values)
		 VALUES ($1, $2, $3, $4)`,
		equipmentID,
		string(action),
		oldValues,
		newValues,
	)
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

// ListFor returns all entries for one equipment id, most recent first. The
// result is valid even when the subject row no longer exists.
func (r *historyRepository) ListFor(ctx context.Context, equipmentID int64) ([]domain.HistoryEntry, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, equipment_id, action, old_values, new_values, recorded_at
		 FROM equipment_history
		 WHERE equipment_id = $1
		 ORDER BY recorded_at DESC, id DESC`,
		equipmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			entry     domain.HistoryEntry
			action    string
			oldValues pgtype.Text
			newValues pgtype.Text
			recorded  pgtype.Timestamptz
		)
		if scanErr := rows.Scan(&entry.ID, &entry.EquipmentID, &action, &oldValues, &newValues, &recorded); scanErr != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", scanErr)
		}

		entry.Action = domain.Action(action)
		if oldValues.Valid {
			entry.OldValues = &oldValues.String
		}
		if newValues.Valid {
			entry.NewValues = &newValues.String
		}
		if recorded.Valid {
			entry.Timestamp = recorded.Time
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}
