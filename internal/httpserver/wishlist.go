package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/service"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.get")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("get_wishlist_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	wl, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return respondServiceError(c, l, "get_wishlist_error", err)
	}

	return c.JSON(http.StatusOK, wl)
}

func (h *WishlistHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.add")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("add_wishlist_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddWishlistItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_wishlist_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Add(ctx, userID, req.ProductID); err != nil {
		return respondServiceError(c, l, "add_wishlist_error", err)
	}

	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}

func (h *WishlistHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "wishlist.remove")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("remove_wishlist_error", "status", 401, "error", err)
		return jsonError(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddWishlistItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_wishlist_error", "status", 400, "error", err)
		return jsonError(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Remove(ctx, userID, req.ProductID); err != nil {
		return respondServiceError(c, l, "remove_wishlist_error", err)
	}

	return c.JSON(http.StatusOK, transport.SuccessResponse{Success: true})
}
