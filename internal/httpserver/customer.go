package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avkuzmin/shop-backend/internal/middleware/auth"
	"github.com/avkuzmin/shop-backend/internal/service"
	"github.com/avkuzmin/shop-backend/internal/transport"
	"github.com/avkuzmin/shop-backend/pkg/logging"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Me(ctx, userID)
	if err != nil {
		return toHTTPError(c, "customer.me", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *CustomerHTTP) ConfirmEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.confirm_email")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.ConfirmEmail(ctx, userID)
	if err != nil {
		return toHTTPError(c, "customer.confirm_email", err)
	}

	l.Info("confirm_email_success", "email", user.Email)
	return c.JSON(http.StatusOK, user)
}

func (h *CustomerHTTP) UpsertAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.address")

	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req transport.UpsertAddressRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("upsert_address_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.UpsertAddress(ctx, userID, req)
	if err != nil {
		return toHTTPError(c, "customer.address", err)
	}

	l.Info("upsert_address_success")
	return c.JSON(http.StatusOK, addr)
}
