package domain

import (
	"testing"
	"time"
)

func TestNewEquipmentValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		fields NewEquipment
	}{
		{"missing name", NewEquipment{Category: "Tools", Status: StatusAvailable}},
		{"missing category", NewEquipment{Name: "Drill", Status: StatusAvailable}},
		{"missing status", NewEquipment{Name: "Drill", Category: "Tools"}},
		{"blank name", NewEquipment{Name: "   ", Category: "Tools", Status: StatusAvailable}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.fields.Validate()
			if err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !IsValidation(err) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestNewEquipmentValidate_InvalidStatus(t *testing.T) {
	fields := NewEquipment{Name: "Drill", Category: "Tools", Status: "Broken"}
	if err := fields.Validate(); err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError for invalid status, got %v", err)
	}
}

func TestNewEquipmentValidate_AcceptsEveryStatus(t *testing.T) {
	for _, status := range Statuses {
		fields := NewEquipment{Name: "Drill", Category: "Tools", Status: status}
		if err := fields.Validate(); err != nil {
			t.Fatalf("unexpected error for status %q: %v", status, err)
		}
	}
}

func TestEquipmentUpdateValidate_Empty(t *testing.T) {
	err := EquipmentUpdate{}.Validate()
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError for empty update, got %v", err)
	}
	if err.Error() != "no fields to update" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestEquipmentUpdateValidate_InvalidStatus(t *testing.T) {
	bad := Status("Lost")
	err := EquipmentUpdate{Status: &bad}.Validate()
	if err == nil || !IsValidation(err) {
		t.Fatalf("expected ValidationError for invalid status, got %v", err)
	}
}

func TestEquipmentUpdateApply_PartialOverlay(t *testing.T) {
	location := "Warehouse A"
	notes := "calibrated"
	current := Equipment{
		ID:       7,
		Name:     "Oscilloscope",
		Category: "Electronics",
		Status:   StatusAvailable,
		Location: &location,
		Notes:    &notes,
	}

	newStatus := StatusMaintenance
	updated := EquipmentUpdate{Status: &newStatus}.Apply(current)

	if updated.Status != StatusMaintenance {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if updated.Name != current.Name || updated.Category != current.Category {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Location == nil || *updated.Location != location {
		t.Fatalf("location should be unchanged, got %v", updated.Location)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Fatalf("notes should be unchanged, got %v", updated.Notes)
	}
}

func TestEquipmentUpdateApply_AllFields(t *testing.T) {
	name := "Thermal Camera"
	category := "Electronics"
	status := StatusInUse
	loc := "Lab 2"
	purchase := NewDate(2024, time.March, 1)
	maintenance := NewDate(2025, time.January, 15)
	notes := "loaned out"

	updated := EquipmentUpdate{
		Name:            &name,
		Category:        &category,
		Status:          &status,
		Location:        &loc,
		PurchaseDate:    &purchase,
		LastMaintenance: &maintenance,
		Notes:           &notes,
	}.Apply(Equipment{ID: 3, Name: "Old", Category: "Tools", Status: StatusAvailable})

	if updated.Name != name || updated.Category != category || updated.Status != status {
		t.Fatalf("scalar fields not applied: %+v", updated)
	}
	if updated.Location == nil || *updated.Location != loc {
		t.Fatalf("location not applied: %v", updated.Location)
	}
	if updated.PurchaseDate == nil || updated.PurchaseDate.String() != "2024-03-01" {
		t.Fatalf("purchase date not applied: %v", updated.PurchaseDate)
	}
	if updated.LastMaintenance == nil || updated.LastMaintenance.String() != "2025-01-15" {
		t.Fatalf("last maintenance not applied: %v", updated.LastMaintenance)
	}
	if updated.ID != 3 {
		t.Fatalf("id must never change, got %d", updated.ID)
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range Statuses {
		if !status.Valid() {
			t.Fatalf("status %q should be valid", status)
		}
	}
	for _, invalid := range []Status{"", "available", "IN USE", "Scrapped"} {
		if invalid.Valid() {
			t.Fatalf("status %q should be invalid", invalid)
		}
	}
}
