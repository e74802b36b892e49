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

type ProductHandler struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Service
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.Repo.FindProducts(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while listing products")
	}

	resp := make([]transport.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, transport.NewProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
	}

	product, err := h.Repo.FindProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while fetching the product")
	}
	return c.JSON(http.StatusOK, transport.NewProductResponse(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_create")

	var req transport.ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusUnprocessableEntity, "validation", err.Error())
	}

	product := models.Product{
		Name:    *req.Name,
		Price:   *req.Price,
		StoreID: *req.StoreID,
	}
	if err := h.Repo.SaveProduct(ctx, &product); err != nil {
		switch {
		case errors.Is(err, repo.ErrForeignKey):
			return errorJSON(c, http.StatusBadRequest, "invalid_store", "the referenced store does not exist")
		case errors.Is(err, repo.ErrDuplicate):
			return errorJSON(c, http.StatusBadRequest, "conflict", "a product with the same unique value already exists")
		}
		l.Error("save failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while inserting the product")
	}

	// reload to pick up the nested store for the response
	created, err := h.Repo.FindProduct(ctx, product.ID)
	if err != nil {
		l.Error("reload failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while inserting the product")
	}

	h.index(c, created)
	publish(c, h.Producer, events.ProductTopic, requestUserID(c), map[string]any{
		"type":       "product_created",
		"product_id": created.ID,
		"store_id":   created.StoreID,
		"name":       created.Name,
	})

	return c.JSON(http.StatusCreated, transport.NewProductResponse(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_update")

	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
	}

	var req transport.ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "bad_request", "invalid body")
	}

	product, err := h.Repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while fetching the product")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}

	if err := h.Repo.SaveProduct(ctx, product); err != nil {
		l.Error("save failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while updating the product")
	}

	h.index(c, product)
	publish(c, h.Producer, events.ProductTopic, requestUserID(c), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return c.JSON(http.StatusOK, transport.NewProductResponse(product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
	}

	if err := h.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorJSON(c, http.StatusNotFound, "not_found", "product not found")
		}
		l.Error("delete failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "storage_error", "an error occurred while deleting the product")
	}

	if h.Search != nil {
		if err := h.Search.DeleteProduct(ctx, id); err != nil {
			l.Warn("search deindex failed", "product_id", id, "error", err)
		}
	}
	publish(c, h.Producer, events.ProductTopic, requestUserID(c), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "product deleted"})
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.Search == nil {
		return
	}
	if err := h.Search.IndexProduct(c.Request().Context(), p); err != nil {
		logging.FromContext(c.Request().Context()).Warn("search index failed",
			"product_id", p.ID, "error", err)
	}
}
