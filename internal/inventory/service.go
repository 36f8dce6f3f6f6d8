// Package inventory owns the equipment write path: validation, the mutations
// themselves, and the audit ledger entries they produce.
package inventory

import (
	"context"
	"log"

	"github.com/rpattn/equipo/internal/domain"
	"github.com/rpattn/equipo/internal/repository"
)

// Service coordinates the equipment table and its audit ledger. Every
// successful mutation appends exactly one ledger entry.
type Service struct {
	equipment repository.EquipmentRepository
	history   repository.HistoryRepository
	reference repository.ReferenceRepository
}

// NewService wires the inventory service.
func NewService(
	equipment repository.EquipmentRepository,
	history repository.HistoryRepository,
	reference repository.ReferenceRepository,
) *Service {
	return &Service{
		equipment: equipment,
		history:   history,
		reference: reference,
	}
}

// List returns equipment matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	return s.equipment.List(ctx, filter)
}

// Get returns one record or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

// Create validates the fields, persists the row and records a CREATE entry
// whose new snapshot is the persisted row.
func (s *Service) Create(ctx context.Context, fields domain.NewEquipment) (domain.Equipment, error) {
	if err := fields.Validate(); err != nil {
		return domain.Equipment{}, err
	}

	created, err := s.equipment.Create(ctx, fields)
	if err != nil {
		return domain.Equipment{}, err
	}

	s.recordHistory(ctx, created.ID, domain.ActionCreate, domain.NoSnapshot(), domain.SnapshotOf(created))
	return created, nil
}

// Update reads the current row first so the UPDATE entry carries a true
// pre-mutation snapshot, then overwrites only the provided fields.
func (s *Service) Update(ctx context.Context, id int64, update domain.EquipmentUpdate) (domain.Equipment, error) {
	if err := update.Validate(); err != nil {
		return domain.Equipment{}, err
	}

	previous, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, err
	}

	updated, err := s.equipment.Update(ctx, id, update)
	if err != nil {
		return domain.Equipment{}, err
	}

	s.recordHistory(ctx, id, domain.ActionUpdate, domain.SnapshotOf(previous), domain.SnapshotOf(updated))
	return updated, nil
}

// Delete captures the row before removal so the DELETE entry keeps the last
// known state of the record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	previous, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.equipment.Delete(ctx, id); err != nil {
		return err
	}

	s.recordHistory(ctx, id, domain.ActionDelete, domain.SnapshotOf(previous), domain.NoSnapshot())
	return nil
}

// History returns the ledger for one equipment id, most recent first. The
// ledger outlives its subject, so this works for deleted ids too.
func (s *Service) History(ctx context.Context, equipmentID int64) ([]domain.HistoryEntry, error) {
	return s.history.ListFor(ctx, equipmentID)
}

// Categories returns the seeded category vocabulary.
func (s *Service) Categories(ctx context.Context) ([]domain.ReferenceItem, error) {
	return s.reference.Categories(ctx)
}

// Locations returns the seeded location vocabulary.
func (s *Service) Locations(ctx context.Context) ([]domain.ReferenceItem, error) {
	return s.reference.Locations(ctx)
}

// recordHistory appends the ledger entry for a mutation that already
// committed. The ledger write is best-effort: a failure here is logged and
// never turns a reported success into a failure. The primary mutation and
// its ledger entry are intentionally not wrapped in one transaction; the
// audit trail is a best-effort record, not a transactional guarantee.
func (s *Service) recordHistory(ctx context.Context, equipmentID int64, action domain.Action, oldSnap, newSnap domain.Snapshot) {
	oldValues, err := oldSnap.Encode()
	if err != nil {
		log.Printf("[INVENTORY] failed to encode old snapshot for equipment %d: %v", equipmentID, err)
		return
	}
	newValues, err := newSnap.Encode()
	if err != nil {
		log.Printf("[INVENTORY] failed to encode new snapshot for equipment %d: %v", equipmentID, err)
		return
	}

	if err := s.history.Record(ctx, equipmentID, action, oldValues, newValues); err != nil {
		log.Printf("[INVENTORY] failed to record %s history for equipment %d: %v", action, equipmentID, err)
	}
}
