package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/events"
	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/pricing"
	"github.com/mkravets/storeline/internal/repo"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type CartService struct {
	Repo         *repo.GormRepo
	Producer     *events.Producer
	BaseCurrency string
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*transport.CartView, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID, s.BaseCurrency)
	if err != nil {
		return nil, err
	}
	view := cartView(cart)
	return &view, nil
}

func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req transport.AddCartItemRequest) error {
	if req.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productId required", ErrValidation)
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	prod, err := s.Repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}
	if !prod.Active {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	if prod.Stock <= 0 {
		return ErrOutOfStock
	}

	if err := s.Repo.AddItem(ctx, userID, prod, quantity, req.Color, s.BaseCurrency); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID.String(),
		"productID": prod.ID.String(),
		"quantity":  quantity,
	})
	return nil
}

func (s *CartService) Update(ctx context.Context, userID uuid.UUID, req transport.UpdateCartItemRequest) error {
	if req.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productId required", ErrValidation)
	}

	// Non-positive quantity removes the line; no catalog lookup needed.
	if req.Quantity <= 0 {
		if err := s.Repo.RemoveItem(ctx, userID, req.ProductID, s.BaseCurrency); err != nil {
			return err
		}
		s.publish(ctx, userID, map[string]any{
			"type":      "cart_item_removed",
			"userID":    userID.String(),
			"productID": req.ProductID.String(),
		})
		return nil
	}

	prod, err := s.Repo.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	if err := s.Repo.UpdateItem(ctx, userID, prod, req.Quantity, s.BaseCurrency); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_updated",
		"userID":    userID.String(),
		"productID": prod.ID.String(),
		"quantity":  req.Quantity,
	})
	return nil
}

func (s *CartService) Remove(ctx context.Context, userID uuid.UUID, req transport.RemoveCartItemRequest) error {
	if req.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productId required", ErrValidation)
	}

	if err := s.Repo.RemoveItem(ctx, userID, req.ProductID, s.BaseCurrency); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID.String(),
		"productID": req.ProductID.String(),
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	if err := s.Producer.Publish(ctx, events.TopicCartEvents, userID.String(), event); err != nil {
		logging.FromContext(ctx).Error("cart_event_publish_failed", "error", err)
	}
}

func cartView(cart *models.Cart) transport.CartView {
	items := make([]transport.CartLineView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, transport.CartLineView{
			ProductID: it.ProductID,
			Title:     it.Title,
			Color:     it.Color,
			ImageURL:  it.ImageURL,
			UnitPrice: pricing.Format(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: pricing.Format(pricing.LineTotal(it.UnitPrice, it.Quantity)),
			Currency:  it.Currency,
		})
	}

	return transport.CartView{
		ID:       cart.ID,
		Items:    items,
		Subtotal: pricing.Format(cart.Subtotal),
		Discount: pricing.Format(cart.Discount),
		Tax:      pricing.Format(cart.Tax),
		Shipping: pricing.Format(cart.Shipping),
		Total:    pricing.Format(cart.Total),
		Currency: cart.Currency,
	}
}
