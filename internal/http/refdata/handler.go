package refdata

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pettycash-dev/pettycash/internal/refdata"
)

// Handler serves the reference tables consumed by forms and report filters.
type Handler struct {
	src *refdata.Source
}

func NewHandler(src *refdata.Source) *Handler {
	return &Handler{src: src}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.categories)
	r.Get("/requesters", h.requesters)
}

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

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	categories := h.src.Categories()

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) requesters(w http.ResponseWriter, _ *http.Request) {
	requesters := h.src.Requesters()

	resp := make([]requesterResponse, len(requesters))
	for i, r := range requesters {
		resp[i] = requesterResponse{ID: r.ID, Name: r.Name, Department: r.Department}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
