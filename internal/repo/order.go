package repo

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/models"
)

// CreateOrder persists the order with its item snapshots, the pending payment
// and, when requested, the buyer's default shipping address — all inside one
// transaction so a failed step leaves nothing behind.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, payment *models.Payment, defaultAddr *models.Address) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		payment.OrderID = order.ID
		payment.Amount = order.Total
		payment.Currency = order.Currency
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		if defaultAddr != nil {
			if err := upsertDefaultAddress(tx, defaultAddr); err != nil {
				return err
			}
		}
		return nil
	})
}

// nextOrderNumber increments the counter row under a row lock; numbers start
// at 1000 and never repeat, even for concurrent checkouts.
func nextOrderNumber(tx *gorm.DB) (string, error) {
	var c models.OrderCounter
	if err := forUpdate(tx).First(&c).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		c = models.OrderCounter{ID: 1, Count: 0}
		if err := tx.Create(&c).Error; err != nil {
			return "", err
		}
	}

	number := 1000 + c.Count
	c.Count++
	if err := tx.Save(&c).Error; err != nil {
		return "", err
	}
	return strconv.FormatInt(number, 10), nil
}

func upsertDefaultAddress(tx *gorm.DB, addr *models.Address) error {
	var existing models.Address
	err := tx.Where("user_id = ? AND kind = ? AND is_default = ?", addr.UserID, addr.Kind, true).
		First(&existing).Error
	switch {
	case err == nil:
		addr.ID = existing.ID
		return tx.Save(addr).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		addr.IsDefault = true
		return tx.Create(addr).Error
	default:
		return err
	}
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetPayment(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkPaymentPaid flips the pending payment of the user's order to PAID.
// Repeating the call on an already paid order succeeds without a write.
func (r *GormRepo) MarkPaymentPaid(ctx context.Context, orderID, userID uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			return err
		}
		if err := forUpdate(tx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
			return err
		}
		if p.Status == models.PaymentStatusPaid {
			return nil
		}
		p.Status = models.PaymentStatusPaid
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addrs []models.Address
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, updated_at DESC").
		Find(&addrs).Error
	if err != nil {
		return nil, err
	}
	return addrs, nil
}
