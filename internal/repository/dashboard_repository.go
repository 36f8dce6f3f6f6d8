package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/equipo/internal/domain"
)

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository wires the read-only aggregation queries.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) CountEquipment(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}

func (r *dashboardRepository) CountEquipmentByStatus(ctx context.Context, status domain.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment WHERE status = $1`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count equipment with status %s: %w", status, err)
	}
	return count, nil
}

func (r *dashboardRepository) GroupByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT category, COUNT(*) FROM equipment GROUP BY category ORDER BY COUNT(*) DESC, category`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group equipment by category: %w", err)
	}
	defer rows.Close()

	groups := []domain.CategoryCount{}
	for rows.Next() {
		var group domain.CategoryCount
		if scanErr := rows.Scan(&group.Category, &group.Count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan category group: %w", scanErr)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *dashboardRepository) GroupByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT status, COUNT(*) FROM equipment GROUP BY status ORDER BY COUNT(*) DESC, status`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group equipment by status: %w", err)
	}
	defer rows.Close()

	groups := []domain.StatusCount{}
	for rows.Next() {
		var group domain.StatusCount
		if scanErr := rows.Scan(&group.Status, &group.Count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan status group: %w", scanErr)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// GroupByLocation excludes rows without a location.
func (r *dashboardRepository) GroupByLocation(ctx context.Context) ([]domain.LocationCount, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT location, COUNT(*) FROM equipment
		 WHERE location IS NOT NULL
		 GROUP BY location ORDER BY COUNT(*) DESC, location`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group equipment by location: %w", err)
	}
	defer rows.Close()

	groups := []domain.LocationCount{}
	for rows.Next() {
		var group domain.LocationCount
		if scanErr := rows.Scan(&group.Location, &group.Count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan location group: %w", scanErr)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// RecentHistory joins ledger entries with the live equipment name. The join
// is LEFT so entries for deleted rows still come back; their name resolution
// happens in the dashboard service.
func (r *dashboardRepository) RecentHistory(ctx context.Context, limit int) ([]RecentEntry, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT eh.id, eh.equipment_id, eh.action, eh.old_values, eh.new_values, eh.recorded_at, e.name
		 FROM equipment_history eh
		 LEFT JOIN equipment e ON eh.equipment_id = e.id
		 ORDER BY eh.recorded_at DESC, eh.id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent history: %w", err)
	}
	defer rows.Close()

	entries := []RecentEntry{}
	for rows.Next() {
		var (
			entry     RecentEntry
			action    string
			oldValues pgtype.Text
			newValues pgtype.Text
			recorded  pgtype.Timestamptz
			liveName  pgtype.Text
		)
		scanErr := rows.Scan(
			&entry.ID,
			&entry.EquipmentID,
			&action,
			&oldValues,
			&newValues,
			&recorded,
			&liveName,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan recent history entry: %w", scanErr)
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
		if liveName.Valid {
			entry.LiveName = &liveName.String
		}

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent history: %w", err)
	}

	return entries, nil
}

// MaintenanceDue returns non-retired rows whose last maintenance is at least
// the given number of days in the past, most overdue first. Day-granularity
// date arithmetic happens in the database.
func (r *dashboardRepository) MaintenanceDue(ctx context.Context, days int) ([]domain.Equipment, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+equipmentColumns+` FROM equipment
		 WHERE last_maintenance IS NOT NULL
		   AND last_maintenance + $1::int <= CURRENT_DATE
		   AND status <> $2
		 ORDER BY last_maintenance ASC, id ASC`,
		days,
		string(domain.StatusRetired),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance due equipment: %w", err)
	}
	defer rows.Close()

	return collectEquipment(rows)
}
