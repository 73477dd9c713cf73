package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Preview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.preview")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("preview_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutPreviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("preview_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.Preview(ctx, userID, req)
	if err != nil {
		return respondServiceError(c, l, "preview_error", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.create_order")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		return respondServiceError(c, l, "create_order_error", err)
	}

	l.Info("order_created", "orderID", resp.OrderID.String(), "orderNumber", resp.OrderNumber)
	return c.JSON(http.StatusCreated, resp)
}
