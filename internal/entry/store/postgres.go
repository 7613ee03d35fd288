package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pettycash-dev/pettycash/internal/entry"
)

// Postgres implements entry.Repository on a petty_cash_entries table.
// Category and requester are denormalized into the row, matching the
// snapshot-at-creation semantics of the domain model.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

var _ entry.Repository = (*Postgres)(nil)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	id, date, amount, description,
	category_id, category_name, category_description,
	requester_id, requester_name, requester_department,
	status, receipt_url, notes, created_at, updated_at
`

func scanEntry(s scanner) (*entry.Entry, error) {
	var e entry.Entry

	var statusStr string

	var receiptURL, notes sql.NullString

	if err := s.Scan(
		&e.ID, &e.Date, &e.Amount, &e.Description,
		&e.Category.ID, &e.Category.Name, &e.Category.Description,
		&e.Requester.ID, &e.Requester.Name, &e.Requester.Department,
		&statusStr, &receiptURL, &notes, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Status = entry.Status(statusStr)
	e.ReceiptURL = receiptURL.String

	if notes.Valid {
		e.Notes = &notes.String
	}

	return &e, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}

func (p *Postgres) CreateEntry(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO petty_cash_entries (
			date, amount, description,
			category_id, category_name, category_description,
			requester_id, requester_name, requester_department,
			status, receipt_url, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	var receipt sql.NullString
	if e.ReceiptURL != "" {
		receipt = sql.NullString{String: e.ReceiptURL, Valid: true}
	}

	err := p.db.QueryRowContext(ctx, query,
		e.Date,
		e.Amount,
		e.Description,
		e.Category.ID, e.Category.Name, e.Category.Description,
		e.Requester.ID, e.Requester.Name, e.Requester.Department,
		e.Status,
		receipt,
		nullable(e.Notes),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}

	return nil
}

func (p *Postgres) GetEntry(ctx context.Context, id uuid.UUID) (*entry.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM petty_cash_entries WHERE id = $1`

	e, err := scanEntry(p.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("getting entry: %w", err)
	}

	return e, nil
}

// listQuery builds the filtered SELECT with sequential placeholders. Filter
// clause order is fixed: status, requester, start date, end date.
func listQuery(filter entry.ListFilter) (string, []any) {
	query := `SELECT ` + selectEntryColumns + ` FROM petty_cash_entries WHERE TRUE`

	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		query += fmt.Sprintf(" AND requester_id = $%d", len(args))
	}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	query += " ORDER BY created_at ASC"

	return query, args
}

func (p *Postgres) ListEntries(ctx context.Context, filter entry.ListFilter) ([]*entry.Entry, error) {
	query, args := listQuery(filter)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []*entry.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

// UpdateEntry merges the given fields inside a transaction so concurrent
// partial updates cannot interleave.
func (p *Postgres) UpdateEntry(ctx context.Context, id uuid.UUID, params entry.UpdateParams) (*entry.Entry, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning update: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + selectEntryColumns + ` FROM petty_cash_entries WHERE id = $1 FOR UPDATE`

	e, err := scanEntry(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entry.ErrNotFound
		}

		return nil, fmt.Errorf("locking entry: %w", err)
	}

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
		e.Notes = params.Notes
	}

	update := `
		UPDATE petty_cash_entries
		SET date = $1, amount = $2, description = $3,
			category_id = $4, category_name = $5, category_description = $6,
			requester_id = $7, requester_name = $8, requester_department = $9,
			status = $10, receipt_url = $11, notes = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at
	`

	var receipt sql.NullString
	if e.ReceiptURL != "" {
		receipt = sql.NullString{String: e.ReceiptURL, Valid: true}
	}

	err = tx.QueryRowContext(ctx, update,
		e.Date,
		e.Amount,
		e.Description,
		e.Category.ID, e.Category.Name, e.Category.Description,
		e.Requester.ID, e.Requester.Name, e.Requester.Department,
		e.Status,
		receipt,
		nullable(e.Notes),
		id,
	).Scan(&e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing update: %w", err)
	}

	return e, nil
}

func (p *Postgres) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM petty_cash_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	if n == 0 {
		return entry.ErrNotFound
	}

	return nil
}
