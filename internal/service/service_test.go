package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/repo"
)

type testEnv struct {
	T    *testing.T
	DB   *gorm.DB
	Repo *repo.GormRepo
	User uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	return &testEnv{
		T:    t,
		DB:   db,
		Repo: repo.New(db),
		User: uuid.New(),
	}
}

func (env *testEnv) seedProduct(title, slug, price string, stock int) *models.Product {
	env.T.Helper()

	p := models.Product{
		Title:    title,
		Slug:     slug,
		Price:    decimal.RequireFromString(price),
		Currency: "USD",
		Stock:    stock,
		Active:   true,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return &p
}

func (env *testEnv) seedInactiveProduct(title, slug, price string) *models.Product {
	env.T.Helper()

	p := models.Product{
		Title:    title,
		Slug:     slug,
		Price:    decimal.RequireFromString(price),
		Currency: "USD",
		Stock:    10,
		Active:   false,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	// GORM omits zero-valued fields that have a default tag on Create, so the
	// DB default (true) wins; force the column to false explicitly.
	require.NoError(env.T, env.DB.Model(&p).Update("active", false).Error)
	p.Active = false
	return &p
}

func (env *testEnv) cartService() *CartService {
	return &CartService{Repo: env.Repo, BaseCurrency: "USD"}
}

func (env *testEnv) checkoutService() *CheckoutService {
	return &CheckoutService{Repo: env.Repo, BaseCurrency: "USD"}
}

func (env *testEnv) wishlistService() *WishlistService {
	return &WishlistService{Repo: env.Repo}
}

func (env *testEnv) orderService() *OrderService {
	return &OrderService{Repo: env.Repo}
}

func (env *testEnv) catalogService() *CatalogService {
	return &CatalogService{Repo: env.Repo, BaseCurrency: "USD"}
}

func (env *testEnv) authService() *AuthService {
	return &AuthService{
		Repo:          env.Repo,
		JWTSecret:     []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}
