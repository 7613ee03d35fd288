package entry

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/refdata"
)

type Handler struct {
	svc     *entry.Service
	refdata *refdata.Source
}

func NewHandler(svc *entry.Service, src *refdata.Source) *Handler {
	return &Handler{svc: svc, refdata: src}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/status", h.updateStatus)
	r.Patch("/{id}", h.update)
}

type createEntryRequest struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	RequesterID string          `json:"requester_id"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	if req.Description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	if req.Amount.IsNegative() {
		http.Error(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	category, ok := h.refdata.CategoryByID(req.CategoryID)
	if !ok {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return
	}

	requester, ok := h.refdata.RequesterByID(req.RequesterID)
	if !ok {
		http.Error(w, "invalid requester", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), entry.CreateParams{
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    category,
		Requester:   requester,
		Status:      entry.StatusPending,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := entry.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := entry.Status(s)
		if !status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = &status
	}

	if s := r.URL.Query().Get("requester"); s != "" {
		filter.RequesterID = &s
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEntryRequest struct {
	Date        *string          `json:"date,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	RequesterID *string          `json:"requester_id,omitempty"`
	Status      *entry.Status    `json:"status,omitempty"`
	ReceiptURL  *string          `json:"receipt_url,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := entry.UpdateParams{
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		params.Date = &date
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			http.Error(w, "amount must not be negative", http.StatusBadRequest)
			return
		}

		params.Amount = req.Amount
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		params.Status = req.Status
	}

	if req.CategoryID != nil {
		category, ok := h.refdata.CategoryByID(*req.CategoryID)
		if !ok {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return
		}

		params.Category = &category
	}

	if req.RequesterID != nil {
		requester, ok := h.refdata.RequesterByID(*req.RequesterID)
		if !ok {
			http.Error(w, "invalid requester", http.StatusBadRequest)
			return
		}

		params.Requester = &requester
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status entry.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	e, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
