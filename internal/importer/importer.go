// Package importer parses petty-cash CSV exports back into typed rows.
// It accepts the exact column contract produced by report.WriteCSV, so an
// export can be re-imported losslessly.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	enc "github.com/pettycash-dev/pettycash/internal/encoding"
	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/report"
)

// Row is one parsed CSV line. Category and requester arrive as display
// names; resolving them against the reference tables is the caller's job.
type Row struct {
	ID            uuid.UUID
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	CategoryName  string
	RequesterName string
	Department    string
	Status        entry.Status
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a full export, header included. The input encoding is
// auto-detected and decoded to UTF-8 before parsing.
func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	cr := csv.NewReader(utf8r)
	cr.FieldsPerRecord = 11

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: expected header %q", report.CSVHeader)
	}

	if got := strings.Join(records[0], ","); got != report.CSVHeader {
		return nil, fmt.Errorf("unexpected header %q", got)
	}

	rows := make([]Row, 0, len(records)-1)

	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	id, err := uuid.Parse(rec[0])
	if err != nil {
		return Row{}, fmt.Errorf("parsing id %q: %w", rec[0], err)
	}

	date, err := time.Parse(time.DateOnly, rec[1])
	if err != nil {
		return Row{}, fmt.Errorf("parsing date %q: %w", rec[1], err)
	}

	amount, err := decimal.NewFromString(rec[2])
	if err != nil {
		return Row{}, fmt.Errorf("parsing amount %q: %w", rec[2], err)
	}

	if amount.IsNegative() {
		return Row{}, fmt.Errorf("negative amount %q", rec[2])
	}

	status := entry.Status(rec[7])
	if !status.Valid() {
		return Row{}, fmt.Errorf("unknown status %q", rec[7])
	}

	createdAt, err := time.Parse(time.RFC3339, rec[9])
	if err != nil {
		return Row{}, fmt.Errorf("parsing created at %q: %w", rec[9], err)
	}

	updatedAt, err := time.Parse(time.RFC3339, rec[10])
	if err != nil {
		return Row{}, fmt.Errorf("parsing updated at %q: %w", rec[10], err)
	}

	row := Row{
		ID:            id,
		Date:          date,
		Amount:        amount,
		Description:   rec[3],
		CategoryName:  rec[4],
		RequesterName: rec[5],
		Department:    rec[6],
		Status:        status,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}

	if rec[8] != "" {
		notes := rec[8]
		row.Notes = &notes
	}

	return row, nil
}
