package repository

import (
	"context"

	"github.com/rpattn/equipo/internal/domain"
)

// EquipmentRepository defines the write path over the equipment table.
type EquipmentRepository interface {
	Create(ctx context.Context, fields domain.NewEquipment) (domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (domain.Equipment, error)
	List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error)
	Update(ctx context.Context, id int64, update domain.EquipmentUpdate) (domain.Equipment, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// HistoryRepository defines the append-only audit ledger. Entries are never
// mutated and are kept after their subject equipment row is deleted.
type HistoryRepository interface {
	Record(ctx context.Context, equipmentID int64, action domain.Action, oldValues, newValues *string) error
	ListFor(ctx context.Context, equipmentID int64) ([]domain.HistoryEntry, error)
}

// ReferenceRepository exposes the fixed category and location vocabularies.
type ReferenceRepository interface {
	Categories(ctx context.Context) ([]domain.ReferenceItem, error)
	Locations(ctx context.Context) ([]domain.ReferenceItem, error)
	Seed(ctx context.Context, categories, locations []string) error
	CountCategories(ctx context.Context) (int, error)
	CountLocations(ctx context.Context) (int, error)
}

// RecentEntry is a ledger entry joined with the subject's live name, when
// the subject row still exists.
type RecentEntry struct {
	domain.HistoryEntry
	LiveName *string
}

// DashboardRepository holds the read-only aggregation queries. It owns no
// data and never writes.
type DashboardRepository interface {
	CountEquipment(ctx context.Context) (int, error)
	CountEquipmentByStatus(ctx context.Context, status domain.Status) (int, error)
	GroupByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	GroupByStatus(ctx context.Context) ([]domain.StatusCount, error)
	GroupByLocation(ctx context.Context) ([]domain.LocationCount, error)
	RecentHistory(ctx context.Context, limit int) ([]RecentEntry, error)
	MaintenanceDue(ctx context.Context, days int) ([]domain.Equipment, error)
}
