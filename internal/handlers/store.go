package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeapi/internal/events"
	"storeapi/internal/logging"
	"storeapi/internal/models"
	"storeapi/internal/repo"
	"storeapi/internal/search"
	"storeapi/internal/transport"
)

type StoreHandler struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Service
}

func (h *StoreHandler) GetStores(c echo.Context) error {
	stores, err := h.Repo.FindStores(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while listing stores")
	}

	resp := make([]transport.StoreResponse, 0, len(stores))
	for i := range stores {
		resp = append(resp, transport.NewStoreResponse(&stores[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *StoreHandler) GetStore(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
	}

	store, err := h.Repo.FindStore(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while fetching the store")
	}
	return c.JSON(http.StatusOK, transport.NewStoreResponse(store))
}

func (h *StoreHandler) CreateStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store_create")

	var req transport.StoreCreateRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, "validation", err.Error())
	}

	store := models.Store{Name: *req.Name}
	if err := h.Repo.SaveStore(ctx, &store); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return errorJSON(c, http.StatusBadRequest, "conflict", "a store with the same name already exists")
		}
		l.Error("save failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while inserting the store")
	}

	publish(c, h.Producer, events.StoreTopic, requestUserID(c), map[string]any{
		"type":     "store_created",
		"store_id": store.ID,
		"name":     store.Name,
	})

	return c.JSON(http.StatusCreated, transport.NewStoreResponse(&store))
}

func (h *StoreHandler) UpdateStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store_update")

	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
	}

	var req transport.StoreUpdateRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}

	store, err := h.Repo.FindStore(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while fetching the store")
	}

	if req.Name != nil {
		store.Name = *req.Name
	}

	if err := h.Repo.SaveStore(ctx, store); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return errorJSON(c, http.StatusBadRequest, "conflict", "a store with the same name already exists")
		}
		l.Error("save failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while updating the store")
	}

	publish(c, h.Producer, events.StoreTopic, requestUserID(c), map[string]any{
		"type":     "store_updated",
		"store_id": store.ID,
		"name":     store.Name,
	})

	return c.JSON(http.StatusOK, transport.NewStoreResponse(store))
}

// DeleteStore removes the store and, through the cascade, all of its
// products.
func (h *StoreHandler) DeleteStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store_delete")

	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
	}

	store, err := h.Repo.FindStore(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while fetching the store")
	}

	if err := h.Repo.DeleteStore(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "store not found")
		}
		l.Error("delete failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while deleting the store")
	}

	if h.Search != nil {
		for i := range store.Products {
			if err := h.Search.DeleteProduct(ctx, store.Products[i].ID); err != nil {
				l.Warn("search deindex failed", "product_id", store.Products[i].ID, "error", err)
			}
		}
	}

	publish(c, h.Producer, events.StoreTopic, requestUserID(c), map[string]any{
		"type":     "store_deleted",
		"store_id": id,
	})

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "store deleted"})
}
