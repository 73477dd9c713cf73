package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mkravets/storeline/internal/events"
	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/pricing"
	"github.com/mkravets/storeline/internal/repo"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type CheckoutService struct {
	Repo         *repo.GormRepo
	Producer     *events.Producer
	BaseCurrency string
}

type resolvedLine struct {
	Product  models.Product
	Quantity int
}

// resolveItems turns the polymorphic item source into priced lines. An
// explicit list wins over the wishlist, which wins over the cart. Ids that no
// longer resolve to an active product are dropped, not reported, so a stale
// cart or wishlist entry never hard-fails a checkout.
func (s *CheckoutService) resolveItems(ctx context.Context, userID uuid.UUID, items []transport.CheckoutItemRef, useWishlist, useCart bool) ([]resolvedLine, error) {
	var refs []transport.CheckoutItemRef

	switch {
	case len(items) > 0:
		refs = items
	case useWishlist:
		wl, err := s.Repo.FindWishlist(ctx, userID)
		if err != nil {
			return nil, err
		}
		if wl != nil {
			for _, it := range wl.Items {
				refs = append(refs, transport.CheckoutItemRef{ProductID: it.ProductID, Quantity: 1})
			}
		}
	case useCart:
		cart, err := s.Repo.FindCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			for _, it := range cart.Items {
				refs = append(refs, transport.CheckoutItemRef{ProductID: it.ProductID, Quantity: it.Quantity})
			}
		}
	}

	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref.ProductID != uuid.Nil {
			ids = append(ids, ref.ProductID)
		}
	}

	prods, err := s.Repo.GetActiveProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]resolvedLine, 0, len(refs))
	for _, ref := range refs {
		p, ok := prods[ref.ProductID]
		if !ok {
			continue
		}
		q := ref.Quantity
		if q < 1 {
			q = 1
		}
		lines = append(lines, resolvedLine{Product: p, Quantity: q})
	}
	return lines, nil
}

// Preview prices the requested items without touching any state.
func (s *CheckoutService) Preview(ctx context.Context, userID uuid.UUID, req transport.CheckoutPreviewRequest) (*transport.CheckoutPreviewResponse, error) {
	lines, err := s.resolveItems(ctx, userID, req.Items, req.UseWishlist, req.UseCart)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}

	priced := make([]pricing.Line, 0, len(lines))
	views := make([]transport.PreviewLine, 0, len(lines))
	for _, l := range lines {
		priced = append(priced, pricing.Line{
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Currency:  l.Product.Currency,
		})

		view := transport.PreviewLine{
			ProductID: l.Product.ID,
			Title:     l.Product.Title,
			Color:     l.Product.Color,
			UnitPrice: pricing.Format(l.Product.Price),
			Quantity:  l.Quantity,
			LineTotal: pricing.Format(pricing.LineTotal(l.Product.Price, l.Quantity)),
			InStock:   l.Product.Stock >= l.Quantity,
			Link:      "/products/" + l.Product.Slug,
		}
		if len(l.Product.Images) > 0 {
			view.ImageURL = l.Product.Images[0].URL
		}
		views = append(views, view)
	}

	totals := pricing.Compute(priced, s.BaseCurrency)
	return &transport.CheckoutPreviewResponse{
		Items: views,
		Totals: transport.TotalsBlock{
			Subtotal: pricing.Format(totals.Subtotal),
			Discount: pricing.Format(totals.Discount),
			Tax:      pricing.Format(totals.Tax),
			Shipping: pricing.Format(totals.Shipping),
			Total:    pricing.Format(totals.Total),
		},
		Currency: totals.Currency,
	}, nil
}

// CreateOrder re-validates the item list against current catalog state and
// persists the order, its line snapshots, the pending payment and the optional
// default-address change in one transaction.
func (s *CheckoutService) CreateOrder(ctx context.Context, userID uuid.UUID, req transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	if err := validateAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	lines, err := s.resolveItems(ctx, userID, req.Items, req.UseWishlist, req.UseCart)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrNoItems
	}

	priced := make([]pricing.Line, 0, len(lines))
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		priced = append(priced, pricing.Line{
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Currency:  l.Product.Currency,
		})

		productID := l.Product.ID
		item := models.OrderItem{
			ProductID: &productID,
			Title:     l.Product.Title,
			Color:     l.Product.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			LineTotal: pricing.LineTotal(l.Product.Price, l.Quantity),
		}
		if len(l.Product.Images) > 0 {
			item.ImageURL = l.Product.Images[0].URL
		}
		items = append(items, item)
	}

	totals := pricing.Compute(priced, s.BaseCurrency)

	addrJSON, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("marshal address snapshot: %w", err)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusNew,
		Currency:        totals.Currency,
		Subtotal:        totals.Subtotal,
		Discount:        totals.Discount,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		ShippingAddress: string(addrJSON),
		BillingAddress:  string(addrJSON),
		Notes:           req.Notes,
		Items:           items,
	}

	payment := &models.Payment{
		Provider: models.PaymentProviderManual,
		Status:   models.PaymentStatusPending,
	}

	var defaultAddr *models.Address
	if req.SaveAddressAsDefault {
		defaultAddr = &models.Address{
			UserID:      userID,
			Kind:        "shipping",
			Line1:       req.ShippingAddress.Line1,
			Line2:       req.ShippingAddress.Line2,
			City:        req.ShippingAddress.City,
			State:       req.ShippingAddress.State,
			PostalCode:  req.ShippingAddress.PostalCode,
			CountryCode: req.ShippingAddress.CountryCode,
			Phone:       req.ShippingAddress.Phone,
			IsDefault:   true,
		}
	}

	if err := s.Repo.CreateOrder(ctx, order, payment, defaultAddr); err != nil {
		return nil, err
	}

	// The cart only empties when it was the item source; explicit and
	// wishlist checkouts leave it alone.
	if req.UseCart && len(req.Items) == 0 {
		if err := s.Repo.ClearCart(ctx, userID, s.BaseCurrency); err != nil {
			logging.FromContext(ctx).Error("cart_clear_failed", "error", err)
		}
	}

	event := map[string]any{
		"type":        "order_created",
		"userID":      userID.String(),
		"orderID":     order.ID.String(),
		"orderNumber": order.OrderNumber,
		"total":       pricing.Format(order.Total),
		"currency":    order.Currency,
	}
	if err := s.Producer.Publish(ctx, events.TopicOrderEvents, userID.String(), event); err != nil {
		logging.FromContext(ctx).Error("order_event_publish_failed", "error", err)
	}

	return &transport.CreateOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Total:       pricing.Format(order.Total),
		Currency:    order.Currency,
	}, nil
}

func validateAddress(a transport.ShippingAddress) error {
	var missing []string
	if strings.TrimSpace(a.Line1) == "" {
		missing = append(missing, "line1")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postalCode")
	}
	if strings.TrimSpace(a.CountryCode) == "" {
		missing = append(missing, "countryCode")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: shippingAddress missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
