package domain

import (
	"encoding/json"
	"time"
)

// Action is the kind of mutation a ledger entry records.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// UnknownEquipmentName stands in when a deleted record's name cannot be
// recovered from its ledger snapshot.
const UnknownEquipmentName = "Unknown Equipment"

// HistoryEntry is one row of the append-only audit ledger. OldValues and
// NewValues hold raw JSON snapshots; either may be nil depending on the
// action.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipmentId"`
	Action      Action    `json:"action"`
	OldValues   *string   `json:"oldValues"`
	NewValues   *string   `json:"newValues"`
	Timestamp   time.Time `json:"timestamp"`
}

// Snapshot is the state of a record at the moment a ledger entry was
// written. It is either absent or holds a full copy of the record.
type Snapshot struct {
	record *Equipment
}

// SnapshotOf captures a copy of the record as it is now.
func SnapshotOf(e Equipment) Snapshot {
	copied := e
	return Snapshot{record: &copied}
}

// NoSnapshot is the absent snapshot, used where an action has no before or
// no after state.
func NoSnapshot() Snapshot {
	return Snapshot{}
}

// Present reports whether the snapshot holds a record.
func (s Snapshot) Present() bool {
	return s.record != nil
}

// Record returns the captured record, when present.
func (s Snapshot) Record() (Equipment, bool) {
	if s.record == nil {
		return Equipment{}, false
	}
	return *s.record, true
}

// Encode renders the snapshot for ledger storage; absent snapshots encode
// to nil.
func (s Snapshot) Encode() (*string, error) {
	if s.record == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s.record)
	if err != nil {
		return nil, err
	}
	encoded := string(raw)
	return &encoded, nil
}

// DecodeSnapshot reads a stored snapshot back. Ledger rows are read with
// maximum tolerance: nil, empty and unparsable payloads all decode to the
// absent snapshot rather than an error.
func DecodeSnapshot(raw *string) Snapshot {
	if raw == nil || *raw == "" {
		return Snapshot{}
	}
	var record Equipment
	if err := json.Unmarshal([]byte(*raw), &record); err != nil {
		return Snapshot{}
	}
	return Snapshot{record: &record}
}

// NameOr returns the captured record's name, or fallback when the snapshot
// is absent or nameless.
func (s Snapshot) NameOr(fallback string) string {
	if s.record == nil || s.record.Name == "" {
		return fallback
	}
	return s.record.Name
}
