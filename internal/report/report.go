package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/refdata"
)

// ErrNoEntries is returned by the keyed reports when no entry matches the
// requested key and period. An empty report is absent, not zeroed.
var ErrNoEntries = errors.New("no entries in period")

// Period is an inclusive date range over the entry's expense date.
type Period struct {
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether d falls inside the period, inclusive on both ends.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

type CategoryReport struct {
	Category    refdata.Category
	TotalAmount decimal.Decimal
	Count       int
	Entries     []*entry.Entry
}

type RequesterReport struct {
	Requester   refdata.Requester
	TotalAmount decimal.Decimal
	Count       int
	Entries     []*entry.Entry
}

type SummaryReport struct {
	TotalAmount      decimal.Decimal
	TotalEntries     int
	CategoryReports  []*CategoryReport
	RequesterReports []*RequesterReport
	Period           Period
}

// Service derives read-only aggregate views from the entry store. It never
// mutates the store; every query works on a fresh snapshot.
type Service struct {
	entries *entry.Service
}

func NewService(entries *entry.Service) *Service {
	return &Service{entries: entries}
}

func (s *Service) inPeriod(ctx context.Context, period Period) ([]*entry.Entry, error) {
	filtered, err := s.entries.List(ctx, entry.ListFilter{
		StartDate: &period.StartDate,
		EndDate:   &period.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	return filtered, nil
}

// Entries returns the snapshot of entries inside the period, in insertion
// order. This is the row set a full export serializes.
func (s *Service) Entries(ctx context.Context, period Period) ([]*entry.Entry, error) {
	return s.inPeriod(ctx, period)
}

// Summary aggregates all entries in the period, broken out by category and
// by requester. Groups appear in order of first occurrence, and each group's
// entries keep the snapshot order.
func (s *Service) Summary(ctx context.Context, period Period) (*SummaryReport, error) {
	filtered, err := s.inPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	summary := &SummaryReport{
		TotalAmount: decimal.Zero,
		Period:      period,
	}

	categoryIdx := make(map[string]*CategoryReport)
	requesterIdx := make(map[string]*RequesterReport)

	for _, e := range filtered {
		summary.TotalAmount = summary.TotalAmount.Add(e.Amount)
		summary.TotalEntries++

		cr, ok := categoryIdx[e.Category.ID]
		if !ok {
			cr = &CategoryReport{Category: e.Category, TotalAmount: decimal.Zero}
			categoryIdx[e.Category.ID] = cr
			summary.CategoryReports = append(summary.CategoryReports, cr)
		}

		cr.TotalAmount = cr.TotalAmount.Add(e.Amount)
		cr.Count++
		cr.Entries = append(cr.Entries, e)

		rr, ok := requesterIdx[e.Requester.ID]
		if !ok {
			rr = &RequesterReport{Requester: e.Requester, TotalAmount: decimal.Zero}
			requesterIdx[e.Requester.ID] = rr
			summary.RequesterReports = append(summary.RequesterReports, rr)
		}

		rr.TotalAmount = rr.TotalAmount.Add(e.Amount)
		rr.Count++
		rr.Entries = append(rr.Entries, e)
	}

	return summary, nil
}

// ByCategory aggregates entries of one category inside the period. Returns
// ErrNoEntries when nothing matches.
func (s *Service) ByCategory(ctx context.Context, categoryID string, period Period) (*CategoryReport, error) {
	filtered, err := s.inPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &CategoryReport{TotalAmount: decimal.Zero}

	for _, e := range filtered {
		if e.Category.ID != categoryID {
			continue
		}

		if report.Count == 0 {
			report.Category = e.Category
		}

		report.TotalAmount = report.TotalAmount.Add(e.Amount)
		report.Count++
		report.Entries = append(report.Entries, e)
	}

	if report.Count == 0 {
		return nil, ErrNoEntries
	}

	return report, nil
}

// ByRequester aggregates entries of one requester inside the period. Returns
// ErrNoEntries when nothing matches.
func (s *Service) ByRequester(ctx context.Context, requesterID string, period Period) (*RequesterReport, error) {
	filtered, err := s.inPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	report := &RequesterReport{TotalAmount: decimal.Zero}

	for _, e := range filtered {
		if e.Requester.ID != requesterID {
			continue
		}

		if report.Count == 0 {
			report.Requester = e.Requester
		}

		report.TotalAmount = report.TotalAmount.Add(e.Amount)
		report.Count++
		report.Entries = append(report.Entries, e)
	}

	if report.Count == 0 {
		return nil, ErrNoEntries
	}

	return report, nil
}
