package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/models"
)

func (r *GormRepo) GetOrCreateWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var wl *models.Wishlist
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		wl, err = upsertWishlist(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("wishlist_id = ?", wl.ID).Find(&wl.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return wl, nil
}

// FindWishlist loads the wishlist without creating one; a user who has never
// touched theirs gets nil.
func (r *GormRepo) FindWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&wl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("wishlist_id = ?", wl.ID).Find(&wl.Items).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

// AddWishlistItem is a no-op success when the product is already listed.
func (r *GormRepo) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wl, err := upsertWishlist(tx, userID)
		if err != nil {
			return err
		}

		err = tx.Create(&models.WishlistItem{WishlistID: wl.ID, ProductID: productID}).Error
		if err != nil && IsUniqueViolation(err) {
			return nil
		}
		return err
	})
}

func upsertWishlist(tx *gorm.DB, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	if err := tx.Where("user_id = ?", userID).First(&wl).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		wl = models.Wishlist{UserID: userID}
		if err := tx.Create(&wl).Error; err != nil {
			if !IsUniqueViolation(err) {
				return nil, err
			}
			// Lost the insert race; the row exists now.
			wl = models.Wishlist{}
			if err := tx.Where("user_id = ?", userID).First(&wl).Error; err != nil {
				return nil, err
			}
		}
	}
	return &wl, nil
}

func (r *GormRepo) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	var wl models.Wishlist
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&wl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return r.DB.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wl.ID, productID).
		Delete(&models.WishlistItem{}).Error
}
