// Package dashboard derives read-only statistics from the equipment table
// and the audit ledger.
package dashboard

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/rpattn/equipo/internal/domain"
	"github.com/rpattn/equipo/internal/repository"
)

// DefaultActivityLimit caps the recent-activity feed when no limit is given.
const DefaultActivityLimit = 10

// DefaultMaintenanceDays is the due-date threshold when none is given.
const DefaultMaintenanceDays = 30

// Service computes aggregate views. It owns no data and never writes.
type Service struct {
	repo      repository.DashboardRepository
	reference repository.ReferenceRepository
}

// NewService wires the dashboard service.
func NewService(repo repository.DashboardRepository, reference repository.ReferenceRepository) *Service {
	return &Service{repo: repo, reference: reference}
}

// Stats runs the seven counters as independent queries behind a single
// barrier: the combined object is only returned once every count resolved.
// A failed sub-count logs and resolves to zero; partial results are never
// surfaced as errors.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	g, gctx := errgroup.WithContext(ctx)
	count := func(dest *int, name string, query func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := query(gctx)
			if err != nil {
				log.Printf("[DASHBOARD] failed to compute %s: %v", name, err)
				return nil
			}
			*dest = n
			return nil
		})
	}

	count(&stats.TotalEquipment, "totalEquipment", s.repo.CountEquipment)
	count(&stats.AvailableEquipment, "availableEquipment", s.statusCounter(domain.StatusAvailable))
	count(&stats.InUseEquipment, "inUseEquipment", s.statusCounter(domain.StatusInUse))
	count(&stats.MaintenanceEquipment, "maintenanceEquipment", s.statusCounter(domain.StatusMaintenance))
	count(&stats.RetiredEquipment, "retiredEquipment", s.statusCounter(domain.StatusRetired))
	count(&stats.TotalCategories, "totalCategories", s.reference.CountCategories)
	count(&stats.TotalLocations, "totalLocations", s.reference.CountLocations)

	if err := g.Wait(); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// EquipmentValue is the status-only variant of Stats used by the dashboard's
// value widget.
func (s *Service) EquipmentValue(ctx context.Context) (domain.StatusBreakdown, error) {
	var breakdown domain.StatusBreakdown

	g, gctx := errgroup.WithContext(ctx)
	count := func(dest *int, name string, query func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := query(gctx)
			if err != nil {
				log.Printf("[DASHBOARD] failed to compute %s: %v", name, err)
				return nil
			}
			*dest = n
			return nil
		})
	}

	count(&breakdown.TotalEquipment, "totalEquipment", s.repo.CountEquipment)
	count(&breakdown.AvailableEquipment, "availableEquipment", s.statusCounter(domain.StatusAvailable))
	count(&breakdown.InUseEquipment, "inUseEquipment", s.statusCounter(domain.StatusInUse))
	count(&breakdown.MaintenanceEquipment, "maintenanceEquipment", s.statusCounter(domain.StatusMaintenance))
	count(&breakdown.RetiredEquipment, "retiredEquipment", s.statusCounter(domain.StatusRetired))

	if err := g.Wait(); err != nil {
		return domain.StatusBreakdown{}, err
	}
	return breakdown, nil
}

func (s *Service) statusCounter(status domain.Status) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		return s.repo.CountEquipmentByStatus(ctx, status)
	}
}

// ByCategory groups the equipment table by category, busiest first.
func (s *Service) ByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.repo.GroupByCategory(ctx)
}

// ByStatus groups the equipment table by status, busiest first.
func (s *Service) ByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	return s.repo.GroupByStatus(ctx)
}

// ByLocation groups the equipment table by location, excluding rows without
// one.
func (s *Service) ByLocation(ctx context.Context) ([]domain.LocationCount, error) {
	return s.repo.GroupByLocation(ctx)
}

// RecentActivity returns up to limit ledger entries, newest first, each with
// a resolved equipment name. Names come from the live row when it still
// exists, then from either ledger snapshot; an entry with no usable snapshot
// resolves to the sentinel instead of failing the feed.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	entries, err := s.repo.RecentHistory(ctx, limit)
	if err != nil {
		return nil, err
	}

	activity := make([]domain.Activity, 0, len(entries))
	for _, entry := range entries {
		activity = append(activity, domain.Activity{
			HistoryEntry:  entry.HistoryEntry,
			EquipmentName: resolveName(entry),
		})
	}
	return activity, nil
}

func resolveName(entry repository.RecentEntry) string {
	if entry.LiveName != nil && *entry.LiveName != "" {
		return *entry.LiveName
	}
	if name := domain.DecodeSnapshot(entry.OldValues).NameOr(""); name != "" {
		return name
	}
	return domain.DecodeSnapshot(entry.NewValues).NameOr(domain.UnknownEquipmentName)
}

// MaintenanceDue projects equipment whose last maintenance is at least days
// ago, skipping retired items, most overdue first.
func (s *Service) MaintenanceDue(ctx context.Context, days int) ([]domain.Equipment, error) {
	if days <= 0 {
		days = DefaultMaintenanceDays
	}
	return s.repo.MaintenanceDue(ctx, days)
}
