package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/entry/store"
	"github.com/pettycash-dev/pettycash/internal/refdata"
	"github.com/pettycash-dev/pettycash/internal/report"
)

var (
	officeSupplies = refdata.Category{ID: "1", Name: "Office Supplies", Description: "Office supplies and materials"}
	travel         = refdata.Category{ID: "2", Name: "Travel", Description: "Travel expenses"}

	johnDoe   = refdata.Requester{ID: "1", Name: "John Doe", Department: "IT"}
	janeSmith = refdata.Requester{ID: "2", Name: "Jane Smith", Department: "HR"}
)

func newServices(t *testing.T) (*entry.Service, *report.Service) {
	t.Helper()

	entries := entry.NewService(store.NewMemory())

	return entries, report.NewService(entries)
}

func mustCreate(t *testing.T, svc *entry.Service, date time.Time, amount int64, desc string, cat refdata.Category, req refdata.Requester) *entry.Entry {
	t.Helper()

	e, err := svc.Create(context.Background(), entry.CreateParams{
		Date:        date,
		Amount:      decimal.NewFromInt(amount),
		Description: desc,
		Category:    cat,
		Requester:   req,
		Status:      entry.StatusPending,
	})
	require.NoError(t, err)

	return e
}

func january() report.Period {
	return report.Period{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestPeriod_ContainsInclusive(t *testing.T) {
	p := january()

	assert.True(t, p.Contains(p.StartDate))
	assert.True(t, p.Contains(p.EndDate))
	assert.True(t, p.Contains(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSummary_EmptyStore(t *testing.T) {
	_, reports := newServices(t)

	summary, err := reports.Summary(context.Background(), january())
	require.NoError(t, err)

	assert.True(t, summary.TotalAmount.IsZero())
	assert.Zero(t, summary.TotalEntries)
	assert.Empty(t, summary.CategoryReports)
	assert.Empty(t, summary.RequesterReports)
}

func TestSummary_TotalsAndGroups(t *testing.T) {
	entries, reports := newServices(t)

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	feb5 := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	mustCreate(t, entries, jan15, 1500, "printer paper", officeSupplies, johnDoe)
	mustCreate(t, entries, jan20, 300, "taxi", travel, janeSmith)
	mustCreate(t, entries, jan20, 200, "pens", officeSupplies, janeSmith)
	mustCreate(t, entries, feb5, 999, "out of period", travel, johnDoe)

	summary, err := reports.Summary(context.Background(), january())
	require.NoError(t, err)

	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(2000)), summary.TotalAmount)
	assert.Equal(t, 3, summary.TotalEntries)

	// Groups appear in first-seen order.
	require.Len(t, summary.CategoryReports, 2)
	assert.Equal(t, "1", summary.CategoryReports[0].Category.ID)
	assert.Equal(t, "2", summary.CategoryReports[1].Category.ID)

	require.Len(t, summary.RequesterReports, 2)
	assert.Equal(t, "1", summary.RequesterReports[0].Requester.ID)
	assert.Equal(t, "2", summary.RequesterReports[1].Requester.ID)

	// Per-group totals and counts.
	assert.True(t, summary.CategoryReports[0].TotalAmount.Equal(decimal.NewFromInt(1700)))
	assert.Equal(t, 2, summary.CategoryReports[0].Count)
	assert.True(t, summary.CategoryReports[1].TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, summary.CategoryReports[1].Count)

	// Group totals sum to the overall total for both groupings.
	catSum := decimal.Zero
	for _, cr := range summary.CategoryReports {
		catSum = catSum.Add(cr.TotalAmount)
	}
	assert.True(t, catSum.Equal(summary.TotalAmount))

	reqSum := decimal.Zero
	for _, rr := range summary.RequesterReports {
		reqSum = reqSum.Add(rr.TotalAmount)
	}
	assert.True(t, reqSum.Equal(summary.TotalAmount))
}

func TestSummary_PeriodBoundariesInclusive(t *testing.T) {
	entries, reports := newServices(t)

	period := january()
	mustCreate(t, entries, period.StartDate, 100, "on start date", officeSupplies, johnDoe)
	mustCreate(t, entries, period.EndDate, 200, "on end date", officeSupplies, johnDoe)

	summary, err := reports.Summary(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEntries)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(300)))
}

func TestByCategory(t *testing.T) {
	entries, reports := newServices(t)

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mustCreate(t, entries, jan15, 1500, "printer paper", officeSupplies, johnDoe)

	cr, err := reports.ByCategory(context.Background(), "1", january())
	require.NoError(t, err)

	assert.Equal(t, officeSupplies, cr.Category)
	assert.True(t, cr.TotalAmount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 1, cr.Count)
	require.Len(t, cr.Entries, 1)
	assert.Equal(t, "printer paper", cr.Entries[0].Description)
}

func TestByCategory_NoEntries(t *testing.T) {
	entries, reports := newServices(t)

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mustCreate(t, entries, jan15, 1500, "printer paper", officeSupplies, johnDoe)

	_, err := reports.ByCategory(context.Background(), "2", january())
	assert.ErrorIs(t, err, report.ErrNoEntries)
}

func TestByRequester(t *testing.T) {
	entries, reports := newServices(t)

	jan10 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	jan12 := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mustCreate(t, entries, jan10, 400, "flight", travel, janeSmith)
	mustCreate(t, entries, jan12, 150, "hotel", travel, janeSmith)
	mustCreate(t, entries, jan12, 50, "snacks", officeSupplies, johnDoe)

	rr, err := reports.ByRequester(context.Background(), "2", january())
	require.NoError(t, err)

	assert.Equal(t, janeSmith, rr.Requester)
	assert.True(t, rr.TotalAmount.Equal(decimal.NewFromInt(550)))
	assert.Equal(t, 2, rr.Count)
	assert.Equal(t, "flight", rr.Entries[0].Description)
	assert.Equal(t, "hotel", rr.Entries[1].Description)
}

func TestByRequester_NoEntries(t *testing.T) {
	_, reports := newServices(t)

	_, err := reports.ByRequester(context.Background(), "3", january())
	assert.ErrorIs(t, err, report.ErrNoEntries)
}

func TestEntries_SnapshotOrder(t *testing.T) {
	entries, reports := newServices(t)

	jan := january()
	mustCreate(t, entries, jan.EndDate, 1, "created first", officeSupplies, johnDoe)
	mustCreate(t, entries, jan.StartDate, 2, "created second", travel, janeSmith)

	got, err := reports.Entries(context.Background(), jan)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "created first", got[0].Description)
	assert.Equal(t, "created second", got[1].Description)
}
