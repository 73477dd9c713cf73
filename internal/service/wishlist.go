package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/repo"
	"github.com/mkravets/storeline/internal/transport"
)

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) Get(ctx context.Context, userID uuid.UUID) (*transport.WishlistView, error) {
	wl, err := s.Repo.GetOrCreateWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]uuid.UUID, 0, len(wl.Items))
	for _, it := range wl.Items {
		products = append(products, it.ProductID)
	}
	return &transport.WishlistView{ID: wl.ID, Products: products}, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("%w: productId required", ErrValidation)
	}

	prod, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}
	if !prod.Active {
		return fmt.Errorf("%w: product", ErrNotFound)
	}

	return s.Repo.AddWishlistItem(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return fmt.Errorf("%w: productId required", ErrValidation)
	}
	return s.Repo.RemoveWishlistItem(ctx, userID, productID)
}
