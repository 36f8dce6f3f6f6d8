package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"regexp"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rpattn/equipo/internal/domain"
)

type staticEquipmentRepo struct {
	items      []domain.Equipment
	lastFilter domain.EquipmentFilter
}

func (r *staticEquipmentRepo) Create(_ context.Context, _ domain.NewEquipment) (domain.Equipment, error) {
	return domain.Equipment{}, nil
}

func (r *staticEquipmentRepo) GetByID(_ context.Context, _ int64) (domain.Equipment, error) {
	return domain.Equipment{}, domain.ErrNotFound
}

func (r *staticEquipmentRepo) List(_ context.Context, filter domain.EquipmentFilter) ([]domain.Equipment, error) {
	r.lastFilter = filter
	return r.items, nil
}

func (r *staticEquipmentRepo) Update(_ context.Context, _ int64, _ domain.EquipmentUpdate) (domain.Equipment, error) {
	return domain.Equipment{}, domain.ErrNotFound
}

func (r *staticEquipmentRepo) Delete(_ context.Context, _ int64) error {
	return domain.ErrNotFound
}

func (r *staticEquipmentRepo) Count(_ context.Context) (int, error) {
	return len(r.items), nil
}

func sampleEquipment() []domain.Equipment {
	location := "Warehouse A"
	notes := "cordless, two batteries"
	purchase := domain.NewDate(2023, time.March, 10)
	stamp := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)

	return []domain.Equipment{
		{
			ID:           1,
			Name:         "Drill",
			Category:     "Tools",
			Status:       domain.StatusAvailable,
			Location:     &location,
			PurchaseDate: &purchase,
			Notes:        &notes,
			CreatedAt:    stamp,
			UpdatedAt:    stamp,
		},
		{
			ID:        2,
			Name:      "Scanner",
			Category:  "Electronics",
			Status:    domain.StatusRetired,
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
	}
}

func newTestService(items []domain.Equipment) (*Service, *staticEquipmentRepo) {
	repo := &staticEquipmentRepo{items: items}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestExportCSV(t *testing.T) {
	svc, repo := newTestService(sampleEquipment())

	filter := domain.EquipmentFilter{Category: "Tools"}
	report, err := svc.Export(context.Background(), filter, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if repo.lastFilter != filter {
		t.Fatalf("filter not forwarded to the listing, got %+v", repo.lastFilter)
	}
	if report.ContentType != "text/csv" {
		t.Fatalf("unexpected content type: %q", report.ContentType)
	}

	records, err := csv.NewReader(bytes.NewReader(report.Content)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Name" {
		t.Fatalf("unexpected header: %v", records[0])
	}

	drill := records[1]
	if drill[0] != "1" || drill[1] != "Drill" || drill[3] != "Available" {
		t.Fatalf("unexpected first row: %v", drill)
	}
	if drill[4] != "Warehouse A" || drill[5] != "2023-03-10" {
		t.Fatalf("optional fields not rendered: %v", drill)
	}
	if drill[8] != "2024-05-02T09:30:00Z" {
		t.Fatalf("timestamps must render as RFC 3339, got %q", drill[8])
	}

	scanner := records[2]
	if scanner[4] != "" || scanner[5] != "" || scanner[7] != "" {
		t.Fatalf("absent fields must render empty, got %v", scanner)
	}
}

func TestExportXLSX(t *testing.T) {
	svc, _ := newTestService(sampleEquipment())

	report, err := svc.Export(context.Background(), domain.EquipmentFilter{}, FormatXLSX)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if report.ContentType != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type: %q", report.ContentType)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report.Content))
	if err != nil {
		t.Fatalf("report is not a valid workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Equipment")
	if err != nil {
		t.Fatalf("missing Equipment sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Drill" || rows[2][1] != "Scanner" {
		t.Fatalf("unexpected row contents: %v", rows)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc, _ := newTestService(nil)

	if _, err := svc.Export(context.Background(), domain.EquipmentFilter{}, Format("pdf")); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestExportFileName(t *testing.T) {
	svc, _ := newTestService(nil)

	report, err := svc.Export(context.Background(), domain.EquipmentFilter{}, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	pattern := regexp.MustCompile(`^equipment-2025-08-01-[0-9a-f]{8}\.csv$`)
	if !pattern.MatchString(report.FileName) {
		t.Fatalf("unexpected file name: %q", report.FileName)
	}

	second, err := svc.Export(context.Background(), domain.EquipmentFilter{}, FormatCSV)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if second.FileName == report.FileName {
		t.Fatalf("file names must not collide: %q", report.FileName)
	}
}
