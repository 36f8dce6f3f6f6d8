// Package seed populates the reference vocabularies and, optionally, a small
// demo inventory on first boot.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/rpattn/equipo/internal/domain"
	"github.com/rpattn/equipo/internal/repository"
)

// demoEquipment mirrors the sample rows the service historically shipped
// with. They are inserted directly, without ledger entries.
func demoEquipment() []domain.NewEquipment {
	location := func(s string) *string { return &s }
	date := func(s string) *domain.Date {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil
		}
		return &d
	}
	notes := func(s string) *string { return &s }

	return []domain.NewEquipment{
		{
			Name:         "Dell Latitude Laptop",
			Category:     "IT & Networking",
			Status:       domain.StatusAvailable,
			Location:     location("Main Office"),
			PurchaseDate: date("2023-01-15"),
			Notes:        notes("High-performance laptop for development work"),
		},
		{
			Name:         "Office Chair - Ergonomic",
			Category:     "Miscellaneous",
			Status:       domain.StatusInUse,
			Location:     location("Main Office"),
			PurchaseDate: date("2022-08-20"),
			Notes:        notes("Adjustable height and lumbar support"),
		},
		{
			Name:         "Drill Set - Professional",
			Category:     "Tools",
			Status:       domain.StatusAvailable,
			Location:     location("Warehouse A"),
			PurchaseDate: date("2023-03-10"),
			Notes:        notes("Complete drill set with various bits"),
		},
	}
}

// Run seeds the fixed vocabularies and, when demoData is set, the sample
// inventory. Vocabulary seeding is idempotent; demo rows are only inserted
// into an empty table.
func Run(ctx context.Context, reference repository.ReferenceRepository, equipment repository.EquipmentRepository, demoData bool) error {
	if err := reference.Seed(ctx, domain.DefaultCategories, domain.DefaultLocations); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	if !demoData {
		return nil
	}

	count, err := equipment.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check equipment table before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, fields := range demoEquipment() {
		if _, err := equipment.Create(ctx, fields); err != nil {
			return fmt.Errorf("failed to seed equipment %q: %w", fields.Name, err)
		}
	}
	log.Printf("[SEED] inserted %d demo equipment rows", len(demoEquipment()))

	return nil
}
