// Package export renders equipment listings as downloadable CSV or XLSX
// report files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rpattn/equipo/internal/domain"
	"github.com/rpattn/equipo/internal/repository"
)

// Format identifies a supported report file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Report is a rendered export, ready to stream to the client.
type Report struct {
	FileName    string
	ContentType string
	Content     []byte
}

// Service turns filtered equipment listings into report files.
type Service struct {
	equipment repository.EquipmentRepository
	now       func() time.Time
}

// NewService wires the export service.
func NewService(equipment repository.EquipmentRepository) *Service {
	return &Service{
		equipment: equipment,
		now:       time.Now,
	}
}

var reportHeader = []string{
	"ID", "Name", "Category", "Status", "Location",
	"Purchase Date", "Last Maintenance", "Notes", "Created At", "Updated At",
}

// Export renders the current equipment table, narrowed by the filter, into
// the requested format.
func (s *Service) Export(ctx context.Context, filter domain.EquipmentFilter, format Format) (Report, error) {
	equipment, err := s.equipment.List(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load equipment for export: %w", err)
	}

	switch format {
	case FormatCSV:
		content, err := renderCSV(equipment)
		if err != nil {
			return Report{}, err
		}
		return Report{
			FileName:    s.fileName("csv"),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatXLSX:
		content, err := renderXLSX(equipment)
		if err != nil {
			return Report{}, err
		}
		return Report{
			FileName:    s.fileName("xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	default:
		return Report{}, fmt.Errorf("unsupported export format %q: expected csv or xlsx", format)
	}
}

// fileName tags reports with the export date and a unique suffix so repeated
// downloads never collide.
func (s *Service) fileName(extension string) string {
	stamp := s.now().UTC().Format("2006-01-02")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("equipment-%s-%s.%s", stamp, suffix, extension)
}

func reportRow(e domain.Equipment) []string {
	optional := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	optionalDate := func(d *domain.Date) string {
		if d == nil {
			return ""
		}
		return d.String()
	}

	return []string{
		fmt.Sprintf("%d", e.ID),
		e.Name,
		e.Category,
		string(e.Status),
		optional(e.Location),
		optionalDate(e.PurchaseDate),
		optionalDate(e.LastMaintenance),
		optional(e.Notes),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func renderCSV(equipment []domain.Equipment) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range equipment {
		if err := writer.Write(reportRow(item)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(equipment []domain.Equipment) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Equipment"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowIndex int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, item := range equipment {
		if err := writeRow(i+2, reportRow(item)); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
