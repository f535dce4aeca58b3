package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// ItemStore is the persistence contract the handler serves.
type ItemStore interface {
	GetItem(ctx context.Context, code string) (*Item, error)
	ListItems(ctx context.Context) ([]Item, error)
	CreateItem(ctx context.Context, item Item) error
}

// Handler wires HTTP endpoints for catalog lookups and seeding.
type Handler struct {
	logger    *slog.Logger
	repo      ItemStore
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, repo ItemStore) *Handler {
	return &Handler{
		logger:    logger,
		repo:      repo,
		validator: validator.New(),
	}
}

// MountRoutes registers catalog routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.listItems)
	r.Get("/items/{itemCode}", h.getItem)
	r.Post("/items", h.createItem)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "itemCode")
	item, err := h.repo.GetItem(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		h.logger.Error("get item", slog.String("item_code", code), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.ListItems(r.Context())
	if err != nil {
		h.logger.Error("list items", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	item := Item{
		ItemCode:         req.ItemCode,
		Name:             req.Name,
		Price:            req.Price,
		Category:         req.Category,
		StartingQuantity: req.StartingQuantity,
		CurrentQuantity:  req.StartingQuantity,
	}
	if err := h.repo.CreateItem(r.Context(), item); err != nil {
		if errors.Is(err, ErrDuplicate) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
			return
		}
		h.logger.Error("create item", slog.String("item_code", req.ItemCode), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}
