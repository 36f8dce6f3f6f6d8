package domain

// Stats is the dashboard headline: the full equipment count, one count per
// status, and the sizes of both vocabularies.
type Stats struct {
	TotalEquipment       int `json:"totalEquipment"`
	AvailableEquipment   int `json:"availableEquipment"`
	InUseEquipment       int `json:"inUseEquipment"`
	MaintenanceEquipment int `json:"maintenanceEquipment"`
	RetiredEquipment     int `json:"retiredEquipment"`
	TotalCategories      int `json:"totalCategories"`
	TotalLocations       int `json:"totalLocations"`
}

// StatusBreakdown is the status-only subset of Stats served by the value
// widget.
type StatusBreakdown struct {
	TotalEquipment       int `json:"totalEquipment"`
	AvailableEquipment   int `json:"availableEquipment"`
	InUseEquipment       int `json:"inUseEquipment"`
	MaintenanceEquipment int `json:"maintenanceEquipment"`
	RetiredEquipment     int `json:"retiredEquipment"`
}

// CategoryCount is one bucket of the by-category grouping.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StatusCount is one bucket of the by-status grouping.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LocationCount is one bucket of the by-location grouping. Records without
// a location are not counted.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Activity is a ledger entry annotated with the resolved equipment name for
// the recent-activity feed.
type Activity struct {
	HistoryEntry
	EquipmentName string `json:"equipmentName"`
}
