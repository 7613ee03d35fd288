package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/entry"
)

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type requesterResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type entryResponse struct {
	ID          uuid.UUID         `json:"id"`
	Date        string            `json:"date"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Category    categoryResponse  `json:"category"`
	Requester   requesterResponse `json:"requester"`
	Status      entry.Status      `json:"status"`
	ReceiptURL  string            `json:"receipt_url,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toResponse(e *entry.Entry) entryResponse {
	return entryResponse{
		ID:          e.ID,
		Date:        e.Date.Format(time.DateOnly),
		Amount:      e.Amount,
		Description: e.Description,
		Category: categoryResponse{
			ID:          e.Category.ID,
			Name:        e.Category.Name,
			Description: e.Category.Description,
		},
		Requester: requesterResponse{
			ID:         e.Requester.ID,
			Name:       e.Requester.Name,
			Department: e.Requester.Department,
		},
		Status:     e.Status,
		ReceiptURL: e.ReceiptURL,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toResponseList(entries []*entry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}
