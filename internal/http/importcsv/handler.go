package importcsv

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/importer"
	"github.com/pettycash-dev/pettycash/internal/refdata"
)

type Handler struct {
	parser  *importer.Parser
	entries *entry.Service
	refdata *refdata.Source
}

func NewHandler(parser *importer.Parser, entries *entry.Service, src *refdata.Source) *Handler {
	return &Handler{
		parser:  parser,
		entries: entries,
		refdata: src,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedEntry struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type importResponse struct {
	Imported int             `json:"imported"`
	Entries  []importedEntry `json:"entries"`
}

// importCSV re-ingests a previous export. Rows get fresh ids and timestamps;
// category and requester are resolved by name against the reference tables.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]entry.CreateParams, 0, len(rows))

	for i, row := range rows {
		category, ok := h.refdata.CategoryByName(row.CategoryName)
		if !ok {
			http.Error(w, fmt.Sprintf("row %d: unknown category %q", i+2, row.CategoryName), http.StatusBadRequest)
			return
		}

		requester, ok := h.refdata.RequesterByName(row.RequesterName, row.Department)
		if !ok {
			http.Error(w, fmt.Sprintf("row %d: unknown requester %q (%s)", i+2, row.RequesterName, row.Department), http.StatusBadRequest)
			return
		}

		params = append(params, entry.CreateParams{
			Date:        row.Date,
			Amount:      row.Amount,
			Description: row.Description,
			Category:    category,
			Requester:   requester,
			Status:      row.Status,
			Notes:       row.Notes,
		})
	}

	resp := importResponse{Entries: make([]importedEntry, 0, len(params))}

	for _, p := range params {
		e, err := h.entries.Create(r.Context(), p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp.Imported++
		resp.Entries = append(resp.Entries, importedEntry{
			ID:          e.ID.String(),
			Description: e.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
