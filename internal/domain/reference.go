package domain

// ReferenceItem is one entry of a seeded vocabulary table.
type ReferenceItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// DefaultCategories is the vocabulary seeded on first boot. Records may
// still carry free-form categories; the list only feeds pickers.
var DefaultCategories = []string{
	"Electronics",
	"Tools",
	"Medical Equipment",
	"Safety & Security",
	"Appliances",
	"IT & Networking",
	"Miscellaneous",
}

// DefaultLocations is the location vocabulary seeded on first boot.
var DefaultLocations = []string{
	"Main Office",
	"Warehouse A",
	"Warehouse B",
	"Lab 1",
	"Lab 2",
	"Field Office",
	"Maintenance Bay",
	"Storage Room",
}
