package entry_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pettycash-dev/pettycash/internal/entry"
	"github.com/pettycash-dev/pettycash/internal/entry/store"
	entryHandler "github.com/pettycash-dev/pettycash/internal/http/entry"
	"github.com/pettycash-dev/pettycash/internal/refdata"
)

func newTestRouter(t *testing.T) (*chi.Mux, *entry.Service) {
	t.Helper()

	svc := entry.NewService(store.NewMemory())
	h := entryHandler.NewHandler(svc, refdata.NewSource())

	r := chi.NewRouter()
	r.Route("/entries", h.Routes)

	return r, svc
}

func postJSON(t *testing.T, router http.Handler, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func createEntry(t *testing.T, router http.Handler) map[string]any {
	t.Helper()

	rec := postJSON(t, router, "/entries", map[string]any{
		"date":         "2024-01-15",
		"amount":       "1500",
		"description":  "Printer paper",
		"category_id":  "1",
		"requester_id": "1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestHandler_Create(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := createEntry(t, router)

	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "2024-01-15", resp["date"])
	assert.Equal(t, "pending", resp["status"])

	category, ok := resp["category"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Office Supplies", category["name"])

	requester, ok := resp["requester"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "IT", requester["department"])
}

func TestHandler_CreateValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "UnknownCategory",
			body: map[string]any{
				"date": "2024-01-15", "amount": "100", "description": "x",
				"category_id": "99", "requester_id": "1",
			},
		},
		{
			name: "UnknownRequester",
			body: map[string]any{
				"date": "2024-01-15", "amount": "100", "description": "x",
				"category_id": "1", "requester_id": "99",
			},
		},
		{
			name: "MissingDescription",
			body: map[string]any{
				"date": "2024-01-15", "amount": "100",
				"category_id": "1", "requester_id": "1",
			},
		},
		{
			name: "NegativeAmount",
			body: map[string]any{
				"date": "2024-01-15", "amount": "-5", "description": "x",
				"category_id": "1", "requester_id": "1",
			},
		},
		{
			name: "BadDate",
			body: map[string]any{
				"date": "15/01/2024", "amount": "100", "description": "x",
				"category_id": "1", "requester_id": "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/entries", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_GetNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/entries/0d9fb4b2-66a7-4b10-bd52-7b86a4a0ffb0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createEntry(t, router)
	id := created["id"].(string)

	raw, _ := json.Marshal(map[string]any{"status": "approved"})
	req := httptest.NewRequest(http.MethodPatch, "/entries/"+id+"/status", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp["status"])
}

func TestHandler_UpdateStatusInvalid(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createEntry(t, router)
	id := created["id"].(string)

	raw, _ := json.Marshal(map[string]any{"status": "archived"})
	req := httptest.NewRequest(http.MethodPatch, "/entries/"+id+"/status", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_PartialUpdate(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createEntry(t, router)
	id := created["id"].(string)

	raw, _ := json.Marshal(map[string]any{"notes": "paid in cash", "amount": "1750.25"})
	req := httptest.NewRequest(http.MethodPatch, "/entries/"+id, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "paid in cash", resp["notes"])
	// Untouched fields keep their values.
	assert.Equal(t, "Printer paper", resp["description"])
	assert.Equal(t, "pending", resp["status"])
}

func TestHandler_ListWithStatusFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	createEntry(t, router)
	createEntry(t, router)

	req := httptest.NewRequest(http.MethodGet, "/entries?status=pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)

	req = httptest.NewRequest(http.MethodGet, "/entries?status=approved", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp)
}

func TestHandler_Delete(t *testing.T) {
	router, _ := newTestRouter(t)

	created := createEntry(t, router)
	id := created["id"].(string)

	req := httptest.NewRequest(http.MethodDelete, "/entries/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Second delete reports absence.
	req = httptest.NewRequest(http.MethodDelete, "/entries/"+id, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
