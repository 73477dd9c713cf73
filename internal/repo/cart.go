package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/pricing"
)

// GetOrCreateCart upserts the single cart row a user owns and loads its items.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID, baseCurrency string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			cart = models.Cart{UserID: userID, Currency: baseCurrency}
			if err := tx.Create(&cart).Error; err != nil {
				if !IsUniqueViolation(err) {
					return err
				}
				// Lost the insert race; the row exists now.
				cart = models.Cart{}
				if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
					return err
				}
			}
		}
		return tx.Where("cart_id = ?", cart.ID).Find(&cart.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindCart loads the cart without creating one; a user who has never touched
// their cart gets nil.
func (r *GormRepo) FindCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cart.ID).Find(&cart.Items).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges the requested quantity into an existing line or creates a new
// one with a fresh catalog snapshot, then re-derives the cart totals. The cart
// row is locked for the whole mutation so concurrent edits serialize.
func (r *GormRepo) AddItem(ctx context.Context, userID uuid.UUID, prod *models.Product, quantity int, color, baseCurrency string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID, baseCurrency)
		if err != nil {
			return err
		}

		if color == "" {
			color = prod.Color
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, prod.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			applySnapshot(&item, prod, color)
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: prod.ID,
				Quantity:  quantity,
			}
			applySnapshot(&item, prod, color)
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return recalcCart(tx, cart, baseCurrency)
	})
}

// UpdateItem sets a line quantity. Zero or negative removes the line; positive
// quantities are clamped to the product's available stock. An absent line is
// created from the current catalog snapshot.
func (r *GormRepo) UpdateItem(ctx context.Context, userID uuid.UUID, prod *models.Product, quantity int, baseCurrency string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID, baseCurrency)
		if err != nil {
			return err
		}

		if quantity <= 0 {
			if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, prod.ID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return recalcCart(tx, cart, baseCurrency)
		}

		if prod.Stock >= 0 && quantity > prod.Stock {
			quantity = prod.Stock
		}
		if quantity == 0 {
			if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, prod.ID).
				Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return recalcCart(tx, cart, baseCurrency)
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, prod.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity = quantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: prod.ID,
				Quantity:  quantity,
			}
			applySnapshot(&item, prod, prod.Color)
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return recalcCart(tx, cart, baseCurrency)
	})
}

// RemoveItem deletes a line unconditionally; removing an absent line is a
// no-op success.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID, baseCurrency string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID, baseCurrency)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return recalcCart(tx, cart, baseCurrency)
	})
}

// ClearCart empties the user's cart and resets its totals.
func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID, baseCurrency string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := lockCart(tx, userID, baseCurrency)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return recalcCart(tx, cart, baseCurrency)
	})
}

func lockCart(tx *gorm.DB, userID uuid.UUID, baseCurrency string) (*models.Cart, error) {
	var cart models.Cart
	if err := forUpdate(tx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cart = models.Cart{UserID: userID, Currency: baseCurrency}
		if err := tx.Create(&cart).Error; err != nil {
			if !IsUniqueViolation(err) {
				return nil, err
			}
			// A concurrent first write created the row between our miss and
			// the insert; take the lock on the existing one.
			cart = models.Cart{}
			if err := forUpdate(tx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
				return nil, err
			}
		}
	}
	return &cart, nil
}

func applySnapshot(item *models.CartItem, prod *models.Product, color string) {
	item.UnitPrice = prod.Price
	item.Currency = prod.Currency
	item.Title = prod.Title
	item.Color = color
	if len(prod.Images) > 0 {
		item.ImageURL = prod.Images[0].URL
	}
}

func recalcCart(tx *gorm.DB, cart *models.Cart, baseCurrency string) error {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return err
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Currency:  it.Currency,
		})
	}
	totals := pricing.Compute(lines, baseCurrency)

	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]any{
		"currency": totals.Currency,
		"subtotal": totals.Subtotal,
		"discount": totals.Discount,
		"tax":      totals.Tax,
		"shipping": totals.Shipping,
		"total":    totals.Total,
	}).Error
}
