package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storeapi/internal/search"
)

type SearchHandler struct {
	Search *search.Service
}

func (h *SearchHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errorJSON(c, http.StatusBadRequest, "validation", "q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, limit := search.Page(page, size)

	total, products, err := h.Search.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "search_error", "an error occurred while searching")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": products,
	})
}
