package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avkuzmin/shop-backend/internal/repo"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/internal/util"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return toHTTPError(c, "product.create", err)
	}

	l.Info("create_product_success", "productID", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, req)
	if err != nil {
		return toHTTPError(c, "product.update", err)
	}

	l.Info("update_product_success", "productID", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) SetProductActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.is_active")

	var req transport.ProductStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.SetProductActive(ctx, req)
	if err != nil {
		return toHTTPError(c, "product.is_active", err)
	}

	l.Info("product_status_success", "productID", prod.ID, "is_active", prod.IsActive)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.detail")

	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil || id <= 0 {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	prod, err := h.Svc.GetProduct(ctx, uint(id))
	if err != nil {
		return toHTTPError(c, "product.detail", err)
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, repo.ProductListOptions{
		Offset:       offset,
		Limit:        limit,
		Name:         c.QueryParam("name"),
		Brand:        c.QueryParam("brand"),
		OrderByPrice: c.QueryParam("ordering"),
	})
	if err != nil {
		return toHTTPError(c, "product.list", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}
