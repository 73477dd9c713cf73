package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/util"
	"github.com/mkravets/storeline/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListOrders(ctx, userID, offset, limit)
	if err != nil {
		return respondServiceError(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, orderID, userID)
	if err != nil {
		return respondServiceError(c, l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Pay(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.pay")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("pay_order_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("pay_order_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid order id")
	}

	payment, err := h.Svc.Pay(ctx, orderID, userID)
	if err != nil {
		return respondServiceError(c, l, "pay_order_error", err)
	}

	l.Info("payment_confirmed", "orderID", orderID.String())
	return c.JSON(http.StatusOK, payment)
}

func (h *OrderHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "address.list")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("list_addresses_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	addrs, err := h.Svc.ListAddresses(ctx, userID)
	if err != nil {
		return respondServiceError(c, l, "list_addresses_error", err)
	}

	return c.JSON(http.StatusOK, addrs)
}
