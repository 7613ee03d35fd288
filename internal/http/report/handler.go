package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/category/{id}", h.byCategory)
	r.Get("/requester/{id}", h.byRequester)
	r.Get("/export", h.exportCSV)
}

// parsePeriod reads start_date and end_date query params. Both are required;
// the range is inclusive on both ends.
func parsePeriod(r *http.Request) (report.Period, error) {
	start, err := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	if err != nil {
		return report.Period{}, fmt.Errorf("invalid start_date")
	}

	end, err := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))
	if err != nil {
		return report.Period{}, fmt.Errorf("invalid end_date")
	}

	return report.Period{StartDate: start, EndDate: end}, nil
}

type periodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type entrySummary struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      entry.Status    `json:"status"`
}

type categoryReportResponse struct {
	Category    categoryDTO     `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
	Entries     []entrySummary  `json:"entries"`
}

type requesterReportResponse struct {
	Requester   requesterDTO    `json:"requester"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int             `json:"count"`
	Entries     []entrySummary  `json:"entries"`
}

type categoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type requesterDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type summaryResponse struct {
	TotalAmount      decimal.Decimal           `json:"total_amount"`
	TotalEntries     int                       `json:"total_entries"`
	CategoryReports  []categoryReportResponse  `json:"category_reports"`
	RequesterReports []requesterReportResponse `json:"requester_reports"`
	Period           periodResponse            `json:"period"`
}

func toEntrySummaries(entries []*entry.Entry) []entrySummary {
	out := make([]entrySummary, len(entries))
	for i, e := range entries {
		out[i] = entrySummary{
			ID:          e.ID.String(),
			Date:        e.Date.Format(time.DateOnly),
			Amount:      e.Amount,
			Description: e.Description,
			Status:      e.Status,
		}
	}

	return out
}

func toCategoryResponse(cr *report.CategoryReport) categoryReportResponse {
	return categoryReportResponse{
		Category: categoryDTO{
			ID:          cr.Category.ID,
			Name:        cr.Category.Name,
			Description: cr.Category.Description,
		},
		TotalAmount: cr.TotalAmount,
		Count:       cr.Count,
		Entries:     toEntrySummaries(cr.Entries),
	}
}

func toRequesterResponse(rr *report.RequesterReport) requesterReportResponse {
	return requesterReportResponse{
		Requester: requesterDTO{
			ID:         rr.Requester.ID,
			Name:       rr.Requester.Name,
			Department: rr.Requester.Department,
		},
		TotalAmount: rr.TotalAmount,
		Count:       rr.Count,
		Entries:     toEntrySummaries(rr.Entries),
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summary(r.Context(), period)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		TotalAmount:      summary.TotalAmount,
		TotalEntries:     summary.TotalEntries,
		CategoryReports:  make([]categoryReportResponse, 0, len(summary.CategoryReports)),
		RequesterReports: make([]requesterReportResponse, 0, len(summary.RequesterReports)),
		Period: periodResponse{
			StartDate: period.StartDate.Format(time.DateOnly),
			EndDate:   period.EndDate.Format(time.DateOnly),
		},
	}

	for _, cr := range summary.CategoryReports {
		resp.CategoryReports = append(resp.CategoryReports, toCategoryResponse(cr))
	}

	for _, rr := range summary.RequesterReports {
		resp.RequesterReports = append(resp.RequesterReports, toRequesterResponse(rr))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cr, err := h.svc.ByCategory(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		if errors.Is(err, report.ErrNoEntries) {
			http.Error(w, "no entries for category in period", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toCategoryResponse(cr)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) byRequester(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rr, err := h.svc.ByRequester(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		if errors.Is(err, report.ErrNoEntries) {
			http.Error(w, "no entries for requester in period", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toRequesterResponse(rr)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// exportCSV streams the entries of a report as a CSV download. With only a
// period it exports everything the summary covers; category= or requester=
// narrow it to one keyed report.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []*entry.Entry

	switch {
	case r.URL.Query().Get("category") != "":
		cr, err := h.svc.ByCategory(r.Context(), r.URL.Query().Get("category"), period)
		if err != nil {
			if errors.Is(err, report.ErrNoEntries) {
				http.Error(w, "no entries for category in period", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		entries = cr.Entries
	case r.URL.Query().Get("requester") != "":
		rr, err := h.svc.ByRequester(r.Context(), r.URL.Query().Get("requester"), period)
		if err != nil {
			if errors.Is(err, report.ErrNoEntries) {
				http.Error(w, "no entries for requester in period", http.StatusNotFound)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		entries = rr.Entries
	default:
		entries, err = h.svc.Entries(r.Context(), period)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"petty-cash-report-%s.csv\"", time.Now().Format(time.DateOnly)))

	if err := report.WriteCSV(w, entries); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}
