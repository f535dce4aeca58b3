package analytichttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the analytics endpoints onto the router. The CSV
// report is rate limited separately since it bypasses the result cache sizes
// typical of the JSON endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(10, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/sales-summary", h.handleSalesSummary)
	r.Get("/average-sales-summary", h.handleAverageSales)
	r.Get("/trend-analysis", h.handleTrendAnalysis)
	r.Get("/sales-comparison", h.handleSalesComparison)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/sales-report", h.handleSalesReport)
	})
}
