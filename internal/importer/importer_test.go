package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/importer"
	"github.com/pettycash-dev/pettycash/internal/refdata"
	"github.com/pettycash-dev/pettycash/internal/report"
)

func TestParser_RoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC)
	updated := time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC)
	notes := `reviewed, "ok" to pay`

	entries := []*entry.Entry{
		{
			ID:          uuid.New(),
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.RequireFromString("1500.50"),
			Description: `He said "hi"`,
			Category:    refdata.Category{ID: "1", Name: "Office Supplies"},
			Requester:   refdata.Requester{ID: "1", Name: "John Doe", Department: "IT"},
			Status:      entry.StatusApproved,
			Notes:       &notes,
			CreatedAt:   created,
			UpdatedAt:   updated,
		},
		{
			ID:          uuid.New(),
			Date:        time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			Amount:      decimal.NewFromInt(300),
			Description: "ค่าเดินทาง",
			Category:    refdata.Category{ID: "2", Name: "Travel"},
			Requester:   refdata.Requester{ID: "2", Name: "Jane Smith", Department: "HR"},
			Status:      entry.StatusPending,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, entries))

	rows, err := importer.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for i, row := range rows {
		want := entries[i]

		assert.Equal(t, want.ID, row.ID)
		assert.True(t, want.Date.Equal(row.Date))
		assert.True(t, want.Amount.Equal(row.Amount), "amount %s != %s", want.Amount, row.Amount)
		assert.Equal(t, want.Description, row.Description)
		assert.Equal(t, want.Category.Name, row.CategoryName)
		assert.Equal(t, want.Requester.Name, row.RequesterName)
		assert.Equal(t, want.Requester.Department, row.Department)
		assert.Equal(t, want.Status, row.Status)
		assert.True(t, want.CreatedAt.Equal(row.CreatedAt))
		assert.True(t, want.UpdatedAt.Equal(row.UpdatedAt))
	}

	require.NotNil(t, rows[0].Notes)
	assert.Equal(t, notes, *rows[0].Notes)
	assert.Nil(t, rows[1].Notes)
}

func TestParser_RejectsUnknownHeader(t *testing.T) {
	input := "Foo,Date,Amount,Description,Category,Requester,Department,Status,Notes,Created At,Updated At\n"

	_, err := importer.NewParser().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected header")
}

func TestParser_RejectsBadRows(t *testing.T) {
	header := report.CSVHeader + "\n"
	id := uuid.New().String()

	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			name: "BadID",
			row:  "nope,2024-01-15,100,x,Office Supplies,John Doe,IT,pending,,2024-01-16T09:30:00Z,2024-01-16T09:30:00Z",
			want: "parsing id",
		},
		{
			name: "BadDate",
			row:  id + ",15/01/2024,100,x,Office Supplies,John Doe,IT,pending,,2024-01-16T09:30:00Z,2024-01-16T09:30:00Z",
			want: "parsing date",
		},
		{
			name: "NegativeAmount",
			row:  id + ",2024-01-15,-5,x,Office Supplies,John Doe,IT,pending,,2024-01-16T09:30:00Z,2024-01-16T09:30:00Z",
			want: "negative amount",
		},
		{
			name: "UnknownStatus",
			row:  id + ",2024-01-15,100,x,Office Supplies,John Doe,IT,archived,,2024-01-16T09:30:00Z,2024-01-16T09:30:00Z",
			want: "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := importer.NewParser().Parse(strings.NewReader(""))
	require.Error(t, err)
}
