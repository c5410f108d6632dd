package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

func (h *CatalogHTTP) CreateSubCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.create")

	var req transport.CreateSubCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_subcategory_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sub, err := h.Svc.CreateSubCategory(ctx, req)
	if err != nil {
		return toHTTPError(c, "subcategory.create", err)
	}

	l.Info("create_subcategory_success", "name", sub.Name)
	return c.JSON(http.StatusCreated, sub)
}

func (h *CatalogHTTP) DisableSubCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.disable")

	var req transport.SubCategoryNameRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("disable_subcategory_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sub, err := h.Svc.DeactivateSubCategory(ctx, req.Name)
	if err != nil {
		return toHTTPError(c, "subcategory.disable", err)
	}

	l.Info("disable_subcategory_success", "name", sub.Name)
	return c.JSON(http.StatusOK, sub)
}

func (h *CatalogHTTP) EnableSubCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.enable")

	var req transport.SubCategoryNameRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("enable_subcategory_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	sub, err := h.Svc.ActivateSubCategory(ctx, req.Name)
	if err != nil {
		return toHTTPError(c, "subcategory.enable", err)
	}

	l.Info("enable_subcategory_success", "name", sub.Name)
	return c.JSON(http.StatusOK, sub)
}
