// Package analytichttp serves the read-side sales analytics endpoints.
package analytichttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/meridian-pos/meridian-pos/internal/analytics"
	"github.com/meridian-pos/meridian-pos/internal/analytics/export"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

const requestTimeout = 5 * time.Second

// AnalyticsService defines the reporting contract used by the handler.
type AnalyticsService interface {
	DailySummary(ctx context.Context, date time.Time) (analytics.DailySummary, error)
	RangeAverages(ctx context.Context, r analytics.DateRange) (analytics.RangeAverages, error)
	RangeSalesDetail(ctx context.Context, r analytics.DateRange) (analytics.SalesDetail, error)
	ItemTrend(ctx context.Context, r analytics.DateRange) ([]analytics.TrendPoint, error)
	CompareRanges(ctx context.Context, a, b analytics.DateRange) (analytics.Comparison, error)
}

// Handler coordinates HTTP requests for sales analytics.
type Handler struct {
	logger  *slog.Logger
	service AnalyticsService
	csvPool sync.Pool
	now     func() time.Time
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service AnalyticsService) *Handler {
	h := &Handler{
		logger:  logger,
		service: service,
		now:     time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// handleSalesSummary reports today's totals, or a specific day when ?date= is
// given.
func (h *Handler) handleSalesSummary(w http.ResponseWriter, r *http.Request) {
	date := h.now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "date must be formatted YYYY-MM-DD")
			return
		}
		date = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.service.DailySummary(ctx, date)
	if err != nil {
		h.handleServerError(w, "daily summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) handleAverageSales(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r, "start_date", "end_date")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	averages, err := h.service.RangeAverages(ctx, rng)
	if err != nil {
		h.handleServerError(w, "range averages", err)
		return
	}
	httpx.JSON(w, http.StatusOK, averages)
}

func (h *Handler) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r, "start_date", "end_date")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.service.RangeSalesDetail(ctx, rng)
	if err != nil {
		h.handleServerError(w, "sales report", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteSalesReportCSV(buf, detail); err != nil {
		h.handleServerError(w, "write sales csv", err)
		return
	}

	filename := fmt.Sprintf("sales-report-%s-%s.csv", rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handleTrendAnalysis(w http.ResponseWriter, r *http.Request) {
	rng, ok := h.parseRange(w, r, "start_date", "end_date")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	points, err := h.service.ItemTrend(ctx, rng)
	if errors.Is(err, analytics.ErrNoSalesData) {
		httpx.JSON(w, http.StatusOK, map[string]string{
			"message": "No sales data found for the given date range.",
		})
		return
	}
	if err != nil {
		h.handleServerError(w, "trend analysis", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{"trend": points})
}

func (h *Handler) handleSalesComparison(w http.ResponseWriter, r *http.Request) {
	rangeA, ok := h.parseRange(w, r, "start_date_1", "end_date_1")
	if !ok {
		return
	}
	rangeB, ok := h.parseRange(w, r, "start_date_2", "end_date_2")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	comparison, err := h.service.CompareRanges(ctx, rangeA, rangeB)
	if err != nil {
		h.handleServerError(w, "sales comparison", err)
		return
	}
	httpx.JSON(w, http.StatusOK, comparison)
}

func (h *Handler) parseRange(w http.ResponseWriter, r *http.Request, startParam, endParam string) (analytics.DateRange, bool) {
	start := r.URL.Query().Get(startParam)
	end := r.URL.Query().Get(endParam)
	if start == "" || end == "" {
		httpx.Problem(w, http.StatusBadRequest, "Missing Parameters",
			fmt.Sprintf("%s and %s are required", startParam, endParam))
		return analytics.DateRange{}, false
	}
	rng, err := analytics.ParseDateRange(start, end)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date Range", err.Error())
		return analytics.DateRange{}, false
	}
	return rng, true
}

func (h *Handler) handleServerError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, analytics.ErrInvalidRange) {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date Range", err.Error())
		return
	}
	h.logError(op, err)
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func (h *Handler) logError(op string, err error) {
	if h.logger != nil {
		h.logger.Error("analytics handler failure", "op", op, "error", err)
	}
}
