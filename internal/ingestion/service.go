// Package ingestion imports equipment rows in bulk from CSV or XLSX files.
// Every imported row goes through the regular create path, so the audit
// ledger sees bulk imports the same way it sees single creates.
package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rpattn/equipo/internal/domain"
	"github.com/rpattn/equipo/internal/inventory"
)

// Summary reports the outcome of one import batch.
type Summary struct {
	BatchID  uuid.UUID  `json:"batchId"`
	FileName string     `json:"fileName"`
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
}

// RowError pins a failed row to its position in the source file.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Service parses uploaded files and feeds the rows through the inventory
// service.
type Service struct {
	inventory *inventory.Service
}

// NewService wires the import service.
func NewService(inv *inventory.Service) *Service {
	return &Service{inventory: inv}
}

// Import reads the file, maps its header onto equipment fields and creates
// one record per data row. Row-level failures are collected, not fatal; the
// batch succeeds with whatever rows were valid.
func (s *Service) Import(ctx context.Context, fileName string, reader io.Reader) (Summary, error) {
	summary := Summary{
		BatchID:  uuid.New(),
		FileName: fileName,
		Errors:   []RowError{},
	}

	payload, err := io.ReadAll(reader)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read upload: %w", err)
	}

	var records [][]string
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		records, err = parseCSV(payload)
	case ".xlsx":
		records, err = parseExcel(payload)
	default:
		return Summary{}, fmt.Errorf("unsupported file type %q: expected .csv or .xlsx", filepath.Ext(fileName))
	}
	if err != nil {
		return Summary{}, err
	}

	if len(records) == 0 {
		return Summary{}, errors.New("no rows found in file")
	}

	columns, err := mapHeader(records[0])
	if err != nil {
		return Summary{}, err
	}

	for i, record := range records[1:] {
		rowNumber := i + 2 // 1-based, after the header row

		fields, rowErr := buildRow(columns, record)
		if rowErr == nil {
			_, rowErr = s.inventory.Create(ctx, fields)
		}
		if rowErr != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, RowError{Row: rowNumber, Message: rowErr.Error()})
			continue
		}
		summary.Imported++
	}

	return summary, nil
}

func parseCSV(payload []byte) ([][]string, error) {
	csvReader := csv.NewReader(bytes.NewReader(payload))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

// importableColumns maps normalized header names onto field positions.
var importableColumns = map[string]string{
	"name":             "name",
	"category":         "category",
	"status":           "status",
	"location":         "location",
	"purchasedate":     "purchaseDate",
	"purchase_date":    "purchaseDate",
	"lastmaintenance":  "lastMaintenance",
	"last_maintenance": "lastMaintenance",
	"notes":            "notes",
}

// mapHeader resolves each header cell to a known field, index by position.
func mapHeader(header []string) (map[int]string, error) {
	columns := map[int]string{}
	for i, cell := range header {
		normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(cell), " ", ""))
		if field, ok := importableColumns[normalized]; ok {
			columns[i] = field
		}
	}

	seen := map[string]bool{}
	for _, field := range columns {
		seen[field] = true
	}
	for _, required := range []string{"name", "category", "status"} {
		if !seen[required] {
			return nil, fmt.Errorf("missing required column %q in header", required)
		}
	}
	return columns, nil
}

// buildRow maps one record onto the create fields. Validation proper happens
// in the inventory service; this only shapes the values.
func buildRow(columns map[int]string, record []string) (domain.NewEquipment, error) {
	var fields domain.NewEquipment

	for i, field := range columns {
		if i >= len(record) {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}

		switch field {
		case "name":
			fields.Name = value
		case "category":
			fields.Category = value
		case "status":
			fields.Status = domain.Status(value)
		case "location":
			fields.Location = &value
		case "notes":
			fields.Notes = &value
		case "purchaseDate":
			date, err := domain.ParseDate(value)
			if err != nil {
				return domain.NewEquipment{}, err
			}
			fields.PurchaseDate = &date
		case "lastMaintenance":
			date, err := domain.ParseDate(value)
			if err != nil {
				return domain.NewEquipment{}, err
			}
			fields.LastMaintenance = &date
		}
	}

	return fields, nil
}
