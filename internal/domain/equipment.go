// Package domain holds the core types of the equipment store: the records,
// their lifecycle states, the audit ledger entries and the aggregate views.
package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an equipment record.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusInUse       Status = "In Use"
	StatusMaintenance Status = "Maintenance"
	StatusRetired     Status = "Retired"
)

// Statuses lists every accepted status, in display order.
var Statuses = []Status{StatusAvailable, StatusInUse, StatusMaintenance, StatusRetired}

// Valid reports whether s is one of the accepted statuses. Matching is
// exact; casing and spacing are part of the value.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Equipment is one tracked record. Location, dates and notes are optional
// and render as null when absent.
type Equipment struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Status          Status    `json:"status"`
	Location        *string   `json:"location"`
	PurchaseDate    *Date     `json:"purchaseDate"`
	LastMaintenance *Date     `json:"lastMaintenance"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewEquipment carries the fields of a create request. The id and both
// timestamps are assigned by storage.
type NewEquipment struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Status          Status  `json:"status"`
	Location        *string `json:"location"`
	PurchaseDate    *Date   `json:"purchaseDate"`
	LastMaintenance *Date   `json:"lastMaintenance"`
	Notes           *string `json:"notes"`
}

// Validate rejects records missing a required field or carrying an unknown
// status.
func (f NewEquipment) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Category) == "" || f.Status == "" {
		return Validationf("name, category, and status are required")
	}
	if !f.Status.Valid() {
		return Validationf("invalid status: must be one of %s", statusList())
	}
	return nil
}

// EquipmentUpdate is a partial overwrite: nil fields are left untouched,
// set fields replace the stored value, including explicit clears.
type EquipmentUpdate struct {
	Name            *string `json:"name"`
	Category        *string `json:"category"`
	Status          *Status `json:"status"`
	Location        *string `json:"location"`
	PurchaseDate    *Date   `json:"purchaseDate"`
	LastMaintenance *Date   `json:"lastMaintenance"`
	Notes           *string `json:"notes"`
}

// Empty reports an update that names no fields at all.
func (u EquipmentUpdate) Empty() bool {
	return u.Name == nil &&
		u.Category == nil &&
		u.Status == nil &&
		u.Location == nil &&
		u.PurchaseDate == nil &&
		u.LastMaintenance == nil &&
		u.Notes == nil
}

// Validate rejects empty updates and updates that would blank a required
// field or set an unknown status.
func (u EquipmentUpdate) Validate() error {
	if u.Empty() {
		return Validationf("no fields to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return Validationf("name cannot be empty")
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		return Validationf("category cannot be empty")
	}
	if u.Status != nil && !u.Status.Valid() {
		return Validationf("invalid status: must be one of %s", statusList())
	}
	return nil
}

// Apply overlays the update onto a record and returns the result. The id
// and timestamps are never touched here; storage owns them.
func (u EquipmentUpdate) Apply(e Equipment) Equipment {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Status != nil {
		e.Status = *u.Status
	}
	if u.Location != nil {
		e.Location = u.Location
	}
	if u.PurchaseDate != nil {
		e.PurchaseDate = u.PurchaseDate
	}
	if u.LastMaintenance != nil {
		e.LastMaintenance = u.LastMaintenance
	}
	if u.Notes != nil {
		e.Notes = u.Notes
	}
	return e
}

// EquipmentFilter narrows a listing. Empty fields match everything; Search
// matches name and notes, case-insensitively.
type EquipmentFilter struct {
	Status   string
	Category string
	Location string
	Search   string
}
