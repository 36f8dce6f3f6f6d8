package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rpattn/equipo/internal/domain"
)

// fakeClock hands out strictly increasing timestamps so updated_at visibly
// advances between mutations.
type fakeClock struct {
	mu   sync.Mutex
	last time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{last: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = c.last.Add(time.Second)
	return c.last
}

// fakeEquipmentRepo is an in-memory stand-in for the equipment table with
// the same ordering and filter semantics as the SQL repository.
type fakeEquipmentRepo struct {
	clock  *fakeClock
	nextID int64
	items  map[int64]domain.Equipment
}

func newFakeEquipmentRepo(clock *fakeClock) *fakeEquipmentRepo {
	return &fakeEquipmentRepo{clock: clock, items: map[int64]domain.Equipment{}}
}

func (r *fakeEquipmentRepo) Create(_ context.Context, fields domain.NewEquipment) (domain.Equipment, error) {
	r.nextID++
	now := r.clock.Now()
	item := domain.Equipment{
		ID:              r.nextID,
		Name:            fields.Name,
		Category:        fields.Category,
		Status:          fields.Status,
		Location:        fields.Location,
		PurchaseDate:    fields.PurchaseDate,
		LastMaintenance: fields.LastMaintenance,
		Notes:           fields.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id int64) (domain.Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.Equipment{}, domain.ErrNotFound
	}
	return item, nil
}

func (r *fakeEquipmentRepo) List(_ context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	matches := []domain.Equipment{}
	for _, item := range r.items {
		if filter.Status != "" && string(item.Status) != filter.Status {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.Location != "" && (item.Location == nil || *item.Location != filter.Location) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			notes := ""
			if item.Notes != nil {
				notes = *item.Notes
			}
			if !strings.Contains(strings.ToLower(item.Name), needle) &&
				!strings.Contains(strings.ToLower(notes), needle) {
				continue
			}
		}
		matches = append(matches, item)
	}

	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID > matches[j].ID
	})
	return matches, nil
}

func (r *fakeEquipmentRepo) Update(_ context.Context, id int64, update domain.EquipmentUpdate) (domain.Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return domain.Equipment{}, domain.ErrNotFound
	}
	item = update.Apply(item)
	item.UpdatedAt = r.clock.Now()
	r.items[id] = item
	return item, nil
}

func (r *fakeEquipmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) Count(_ context.Context) (int, error) {
	return len(r.items), nil
}

// fakeHistoryRepo is an in-memory append-only ledger with optional write
// failure injection.
type fakeHistoryRepo struct {
	clock   *fakeClock
	nextID  int64
	entries []domain.HistoryEntry
	failErr error
}

func newFakeHistoryRepo(clock *fakeClock) *fakeHistoryRepo {
	return &fakeHistoryRepo{clock: clock}
}

func (r *fakeHistoryRepo) Record(_ context.Context, equipmentID int64, action domain.Action, oldValues, newValues *string) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	r.entries = append(r.entries, domain.HistoryEntry{
		ID:          r.nextID,
		EquipmentID: equipmentID,
		Action:      action,
		OldValues:   oldValues,
		NewValues:   newValues,
		Timestamp:   r.clock.Now(),
	})
	return nil
}

func (r *fakeHistoryRepo) ListFor(_ context.Context, equipmentID int64) ([]domain.HistoryEntry, error) {
	matches := []domain.HistoryEntry{}
	for _, entry := range r.entries {
		if entry.EquipmentID == equipmentID {
			matches = append(matches, entry)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].Timestamp.Equal(matches[j].Timestamp) {
			return matches[i].Timestamp.After(matches[j].Timestamp)
		}
		return matches[i].ID > matches[j].ID
	})
	return matches, nil
}

// fakeReferenceRepo serves the seeded vocabularies from memory.
type fakeReferenceRepo struct {
	categories []domain.ReferenceItem
	locations  []domain.ReferenceItem
}

func newFakeReferenceRepo() *fakeReferenceRepo {
	build := func(names []string) []domain.ReferenceItem {
		items := make([]domain.ReferenceItem, len(names))
		for i, name := range names {
			items[i] = domain.ReferenceItem{ID: int64(i + 1), Name: name}
		}
		return items
	}
	return &fakeReferenceRepo{
		categories: build(domain.DefaultCategories),
		locations:  build(domain.DefaultLocations),
	}
}

func (r *fakeReferenceRepo) Categories(_ context.Context) ([]domain.ReferenceItem, error) {
	return r.categories, nil
}

func (r *fakeReferenceRepo) Locations(_ context.Context) ([]domain.ReferenceItem, error) {
	return r.locations, nil
}

func (r *fakeReferenceRepo) Seed(_ context.Context, _, _ []string) error {
	return nil
}

func (r *fakeReferenceRepo) CountCategories(_ context.Context) (int, error) {
	return len(r.categories), nil
}

func (r *fakeReferenceRepo) CountLocations(_ context.Context) (int, error) {
	return len(r.locations), nil
}
