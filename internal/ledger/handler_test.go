package ledger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerRouter(repo *mockRepo, cat *mockCatalog) http.Handler {
	h := NewHandler(slog.Default(), newTestService(repo, cat))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestAddSalesSuccess(t *testing.T) {
	cat := newMockCatalog()
	cat.addItem("P001", "Burger", 12.5, 48)
	repo := newMockRepo()
	router := newHandlerRouter(repo, cat)

	body := `{"items":[{"item_code":"P001","quantity":2}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-sales", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var txn Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txn))
	assert.Equal(t, 25.0, txn.TotalAmount)
	assert.Equal(t, 46, cat.quantity("P001"))
}

func TestAddSalesValidationErrors(t *testing.T) {
	router := newHandlerRouter(newMockRepo(), newMockCatalog())

	body := `{"items":[]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-sales", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var payload struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "items", payload.Errors[0].Field)
}

func TestAddSalesUnknownItemRejected(t *testing.T) {
	cat := newMockCatalog()
	cat.addItem("P001", "Burger", 10, 48)
	router := newHandlerRouter(newMockRepo(), cat)

	body := `{"items":[{"item_code":"MISSING","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-sales", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sale Rejected")
	assert.Equal(t, 48, cat.quantity("P001"))
}

func TestAddSalesInsufficientStockRejected(t *testing.T) {
	cat := newMockCatalog()
	cat.addItem("P001", "Burger", 10, 1)
	router := newHandlerRouter(newMockRepo(), cat)

	body := `{"items":[{"item_code":"P001","quantity":5}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-sales", bytes.NewBufferString(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient stock")
}

func TestGetTransactionEndpoint(t *testing.T) {
	cat := newMockCatalog()
	cat.addItem("P001", "Burger", 10, 48)
	repo := newMockRepo()
	svc := newTestService(repo, cat)
	txn, err := svc.CreateTransaction(httptest.NewRequest(http.MethodGet, "/", nil).Context(), []SaleLine{{ItemCode: "P001", Quantity: 1}})
	require.NoError(t, err)

	h := NewHandler(slog.Default(), svc)
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/"+txn.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUndoEndpoint(t *testing.T) {
	cat := newMockCatalog()
	cat.addItem("P001", "Burger", 10, 48)
	repo := newMockRepo()
	svc := newTestService(repo, cat)
	txn, err := svc.CreateTransaction(httptest.NewRequest(http.MethodGet, "/", nil).Context(), []SaleLine{{ItemCode: "P001", Quantity: 3}})
	require.NoError(t, err)

	h := NewHandler(slog.Default(), svc)
	r := chi.NewRouter()
	h.MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/"+txn.ID.String()+"/undo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 48, cat.quantity("P001"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/"+txn.ID.String()+"/undo", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
