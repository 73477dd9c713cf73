package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, orderID, userID)
}

// Pay is the placeholder capture step: it marks the manual payment as PAID.
func (s *OrderService) Pay(ctx context.Context, orderID, userID uuid.UUID) (*models.Payment, error) {
	return s.Repo.MarkPaymentPaid(ctx, orderID, userID)
}

func (s *OrderService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}
