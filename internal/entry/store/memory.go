package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pettycash-dev/pettycash/internal/entry"
)

// Memory is the in-memory entry repository. Entries are held in insertion
// order and every read hands out copies, so callers can never reach the
// backing slice through a returned snapshot.
type Memory struct {
	mu      sync.Mutex
	entries []entry.Entry
}

func NewMemory() *Memory {
	return &Memory{}
}

var _ entry.Repository = (*Memory)(nil)

func clone(e entry.Entry) entry.Entry {
	if e.Notes != nil {
		notes := *e.Notes
		e.Notes = &notes
	}

	return e
}

func (m *Memory) CreateEntry(_ context.Context, e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.CreatedAt = now
	e.UpdatedAt = now

	m.entries = append(m.entries, clone(*e))

	return nil
}

func (m *Memory) GetEntry(_ context.Context, id uuid.UUID) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			e := clone(m.entries[i])
			return &e, nil
		}
	}

	return nil, entry.ErrNotFound
}

func (m *Memory) ListEntries(_ context.Context, filter entry.ListFilter) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entry.Entry, 0, len(m.entries))

	for i := range m.entries {
		if !matches(m.entries[i], filter) {
			continue
		}

		e := clone(m.entries[i])
		out = append(out, &e)
	}

	return out, nil
}

func matches(e entry.Entry, filter entry.ListFilter) bool {
	if filter.Status != nil && e.Status != *filter.Status {
		return false
	}

	if filter.RequesterID != nil && e.Requester.ID != *filter.RequesterID {
		return false
	}

	if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
		return false
	}

	if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
		return false
	}

	return true
}

func (m *Memory) UpdateEntry(_ context.Context, id uuid.UUID, params entry.UpdateParams) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID != id {
			continue
		}

		e := &m.entries[i]

		if params.Date != nil {
			e.Date = *params.Date
		}

		if params.Amount != nil {
			e.Amount = *params.Amount
		}

		if params.Description != nil {
			e.Description = *params.Description
		}

		if params.Category != nil {
			e.Category = *params.Category
		}

		if params.Requester != nil {
			e.Requester = *params.Requester
		}

		if params.Status != nil {
			e.Status = *params.Status
		}

		if params.ReceiptURL != nil {
			e.ReceiptURL = *params.ReceiptURL
		}

		if params.Notes != nil {
			notes := *params.Notes
			e.Notes = &notes
		}

		e.UpdatedAt = time.Now().UTC()

		updated := clone(*e)

		return &updated, nil
	}

	return nil, entry.ErrNotFound
}

func (m *Memory) DeleteEntry(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}

	return entry.ErrNotFound
}
