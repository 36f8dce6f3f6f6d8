package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/equipo/internal/domain"
)

const equipmentColumns = `id, name, category, status, location, purchase_date, last_maintenance, notes, created_at, updated_at`

type equipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository wires the equipment table repository backed by pgxpool.
func NewEquipmentRepository(pool *pgxpool.Pool) EquipmentRepository {
	return &equipmentRepository{pool: pool}
}

// Create inserts a new row; the database assigns the id and both timestamps.
func (r *equipmentRepository) Create(ctx context.Context, fields domain.NewEquipment) (domain.Equipment, error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO equipment (name, category, status, location, purchase_date, last_maintenance, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+equipmentColumns,
		fields.Name,
		fields.Category,
		string(fields.Status),
		textArg(fields.Location),
		dateArg(fields.PurchaseDate),
		dateArg(fields.LastMaintenance),
		textArg(fields.Notes),
	)

	created, err := scanEquipment(row)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("failed to create equipment: %w", err)
	}
	return created, nil
}

// GetByID retrieves one row, mapping pgx.ErrNoRows to domain.ErrNotFound.
func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`,
		id,
	)

	found, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Equipment{}, domain.ErrNotFound
		}
		return domain.Equipment{}, fmt.Errorf("failed to get equipment: %w", err)
	}
	return found, nil
}

// List returns rows matching the filter, newest first. The filter is built
// over a fixed set of columns; user input only ever travels as placeholders.
func (r *equipmentRepository) List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	return collectEquipment(rows)
}

// Update overwrites only the provided fields and refreshes updated_at.
func (r *equipmentRepository) Update(ctx context.Context, id int64, update domain.EquipmentUpdate) (domain.Equipment, error) {
	query, args := buildUpdateQuery(id, update)

	row := r.pool.QueryRow(ctx, query, args...)
	updated, err := scanEquipment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Equipment{}, domain.ErrNotFound
		}
		return domain.Equipment{}, fmt.Errorf("failed to update equipment: %w", err)
	}
	return updated, nil
}

// Delete removes the row. The ledger keeps its entries for the id.
func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *equipmentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM equipment`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}

// buildListQuery assembles the filtered listing over whitelisted columns.
func buildListQuery(filter domain.EquipmentFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + equipmentColumns + ` FROM equipment`)

	var conditions []string
	var args []any

	appendCondition := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != "" {
		appendCondition("status = $%d", filter.Status)
	}
	if filter.Category != "" {
		appendCondition("category = $%d", filter.Category)
	}
	if filter.Location != "" {
		appendCondition("location = $%d", filter.Location)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR notes ILIKE $%d)", n, n))
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	return sb.String(), args
}

// updatableColumns maps update fields to their column names. Only these
// columns can ever appear in a SET clause.
func buildUpdateQuery(id int64, update domain.EquipmentUpdate) (string, []any) {
	var assignments []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Category != nil {
		set("category", *update.Category)
	}
	if update.Status != nil {
		set("status", string(*update.Status))
	}
	if update.Location != nil {
		set("location", textArg(update.Location))
	}
	if update.PurchaseDate != nil {
		set("purchase_date", dateArg(update.PurchaseDate))
	}
	if update.LastMaintenance != nil {
		set("last_maintenance", dateArg(update.LastMaintenance))
	}
	if update.Notes != nil {
		set("notes", textArg(update.Notes))
	}

	assignments = append(assignments, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE equipment SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "),
		len(args),
		equipmentColumns,
	)
	return query, args
}

// textArg maps an optional string to its SQL argument; empty strings are
// stored as NULL so cleared fields read back as absent.
func textArg(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// dateArg maps an optional date to its SQL argument.
func dateArg(d *domain.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row rowScanner) (domain.Equipment, error) {
	var (
		e               domain.Equipment
		status          string
		location        pgtype.Text
		purchaseDate    pgtype.Date
		lastMaintenance pgtype.Date
		notes           pgtype.Text
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Category,
		&status,
		&location,
		&purchaseDate,
		&lastMaintenance,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Equipment{}, err
	}

	e.Status = domain.Status(status)
	if location.Valid {
		e.Location = &location.String
	}
	if purchaseDate.Valid {
		date := domain.DateOf(purchaseDate.Time)
		e.PurchaseDate = &date
	}
	if lastMaintenance.Valid {
		date := domain.DateOf(lastMaintenance.Time)
		e.LastMaintenance = &date
	}
	if notes.Valid {
		e.Notes = &notes.String
	}
	if createdAt.Valid {
		e.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		e.UpdatedAt = updatedAt.Time
	}

	return e, nil
}

func collectEquipment(rows pgx.Rows) ([]domain.Equipment, error) {
	equipment := []domain.Equipment{}
	for rows.Next() {
		item, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		equipment = append(equipment, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate equipment: %w", err)
	}
	return equipment, nil
}
