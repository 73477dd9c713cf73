package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkravets/storeline/internal/events"
	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/repo"
	"github.com/mkravets/storeline/internal/search"
	"github.com/mkravets/storeline/internal/transport"
	"github.com/mkravets/storeline/pkg/logging"
)

type CatalogService struct {
	Repo         *repo.GormRepo
	ES           *elasticsearch.Client
	ESIndex      string
	Producer     *events.Producer
	BaseCurrency string
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit, true)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, fmt.Errorf("%w: title and slug required", ErrValidation)
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be a non-negative decimal", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.BaseCurrency
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	prod := &models.Product{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Price:       price,
		Currency:    currency,
		Stock:       req.Stock,
		Active:      active,
		Color:       req.Color,
		BrandID:     req.BrandID,
		CategoryID:  req.CategoryID,
	}
	for _, img := range req.Images {
		prod.Images = append(prod.Images, models.ProductImage{URL: img.URL, Position: img.Position})
	}

	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug already exists", ErrConflict)
		}
		return nil, err
	}

	s.index(ctx, prod)
	s.publish(ctx, prod.ID, map[string]any{
		"type":      "product_created",
		"productID": prod.ID.String(),
		"title":     prod.Title,
	})
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	var price *decimal.Decimal
	if req.Price != nil {
		p, err := decimal.NewFromString(*req.Price)
		if err != nil || p.IsNegative() {
			return nil, fmt.Errorf("%w: price must be a non-negative decimal", ErrValidation)
		}
		price = &p
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id, price)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug already exists", ErrConflict)
		}
		return nil, err
	}

	s.index(ctx, prod)
	s.publish(ctx, prod.ID, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID.String(),
		"title":     prod.Title,
	})
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, s.ESIndex, id.String()); err != nil {
			logging.FromContext(ctx).Error("es_delete_failed", "productID", id.String(), "error", err)
		}
	}
	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id.String(),
	})
	return nil
}

func (s *CatalogService) CreateBrand(ctx context.Context, req transport.CreateTaxonRequest) (*models.Brand, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	b := &models.Brand{Name: req.Name, Slug: req.Slug}
	if err := s.Repo.CreateBrand(ctx, b); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug already exists", ErrConflict)
		}
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateTaxonRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Slug) == "" {
		return nil, fmt.Errorf("%w: name and slug required", ErrValidation)
	}
	c := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug already exists", ErrConflict)
		}
		return nil, err
	}
	return c, nil
}

// index mirrors the product into the search index. Index failures are logged,
// never surfaced: the database write already succeeded.
func (s *CatalogService) index(ctx context.Context, prod *models.Product) {
	if s.ES == nil {
		return
	}
	if err := search.IndexProduct(ctx, s.ES, s.ESIndex, prod); err != nil {
		logging.FromContext(ctx).Error("es_index_failed", "productID", prod.ID.String(), "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, id uuid.UUID, event map[string]any) {
	if err := s.Producer.Publish(ctx, events.TopicProductEvents, id.String(), event); err != nil {
		logging.FromContext(ctx).Error("product_event_publish_failed", "error", err)
	}
}
