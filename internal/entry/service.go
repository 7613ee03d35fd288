package entry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/refdata"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, params UpdateParams) (*Entry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error

	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    refdata.Category
	Requester   refdata.Requester
	Status      Status
	ReceiptURL  string
	Notes       *string
}

// UpdateParams carries a partial update: nil fields are left untouched.
type UpdateParams struct {
	Date        *time.Time
	Amount      *decimal.Decimal
	Description *string
	Category    *refdata.Category
	Requester   *refdata.Requester
	Status      *Status
	ReceiptURL  *string
	Notes       *string
}

type ListFilter struct {
	Status      *Status
	RequesterID *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	e := &Entry{
		Date:        params.Date,
		Amount:      params.Amount,
		Description: params.Description,
		Category:    params.Category,
		Requester:   params.Requester,
		Status:      params.Status,
		ReceiptURL:  params.ReceiptURL,
		Notes:       params.Notes,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListFilter{Status: &status})
}

func (s *Service) ListByRequester(ctx context.Context, requesterID string) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListFilter{RequesterID: &requesterID})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Entry, error) {
	return s.repo.UpdateEntry(ctx, id, params)
}

// UpdateStatus sets the status through the general update path; status is not
// a separate mutation.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Entry, error) {
	return s.repo.UpdateEntry(ctx, id, UpdateParams{Status: &status})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteEntry(ctx, id)
}
