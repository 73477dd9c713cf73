package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return respondServiceError(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, transport.CartResponse{Cart: *cart})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Add(ctx, userID, req); err != nil {
		return respondServiceError(c, l, "add_to_cart_error", err)
	}

	l.Info("cart_item_added", "productID", req.ProductID.String())
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Update(ctx, userID, req); err != nil {
		return respondServiceError(c, l, "update_cart_error", err)
	}

	l.Info("cart_item_updated", "productID", req.ProductID.String(), "quantity", req.Quantity)
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("remove_cart_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.RemoveCartItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_cart_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Remove(ctx, userID, req); err != nil {
		return respondServiceError(c, l, "remove_cart_error", err)
	}

	l.Info("cart_item_removed", "productID", req.ProductID.String())
	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
