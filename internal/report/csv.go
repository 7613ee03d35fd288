package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pettycash-dev/pettycash/internal/entry"
)

// CSVHeader is the header row of a petty-cash export. The column order is a
// boundary contract; importers depend on it.
const CSVHeader = "ID,Date,Amount,Description,Category,Requester,Department,Status,Notes,Created At,Updated At"

const (
	numCSVFields = 11
	dateFormat   = "2006-01-02"

	colID        = 0
	colDate      = 1
	colAmount    = 2
	colDesc      = 3
	colCategory  = 4
	colRequester = 5
	colDept      = 6
	colStatus    = 7
	colNotes     = 8
	colCreatedAt = 9
	colUpdatedAt = 10
)

// WriteCSV serializes entries to CSV, header first. Text fields containing
// the delimiter or quotes are escaped with doubled quotes; absent notes
// render as an empty field.
func WriteCSV(w io.Writer, entries []*entry.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(marshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	return cw.Error()
}

func marshalEntry(e *entry.Entry) []string {
	row := make([]string, numCSVFields)
	row[colID] = e.ID.String()
	row[colDate] = e.Date.Format(dateFormat)
	row[colAmount] = e.Amount.String()
	row[colDesc] = e.Description
	row[colCategory] = e.Category.Name
	row[colRequester] = e.Requester.Name
	row[colDept] = e.Requester.Department
	row[colStatus] = string(e.Status)

	if e.Notes != nil {
		row[colNotes] = *e.Notes
	}

	row[colCreatedAt] = e.CreatedAt.UTC().Format(time.RFC3339)
	row[colUpdatedAt] = e.UpdatedAt.UTC().Format(time.RFC3339)

	return row
}
