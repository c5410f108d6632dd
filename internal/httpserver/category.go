package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avkuzmin/shop-backend/internal/service"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return toHTTPError(c, "category.create", err)
	}

	l.Info("create_category_success", "name", cat.Name)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return toHTTPError(c, "category.list", err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) DisableCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.disable")

	var req transport.CategoryNameRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("disable_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.DeactivateCategory(ctx, req.Name)
	if err != nil {
		return toHTTPError(c, "category.disable", err)
	}

	l.Info("disable_category_success", "name", cat.Name)
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) EnableCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.enable")

	var req transport.CategoryNameRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("enable_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.ActivateCategory(ctx, req.Name)
	if err != nil {
		return toHTTPError(c, "category.enable", err)
	}

	l.Info("enable_category_success", "name", cat.Name)
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) ActivateSubCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.activate_subcategories")

	var req transport.CategoryNameRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("activate_subcategories_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.ActivateSubCategories(ctx, req.Name)
	if err != nil {
		return toHTTPError(c, "category.activate_subcategories", err)
	}

	l.Info("activate_subcategories_success", "category", resp.ParentCategory)
	return c.JSON(http.StatusOK, resp)
}
