package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	authmw "github.com/mkravets/storeline/internal/middleware/auth"
	"github.com/mkravets/storeline/internal/service"
)

// Deps carries everything the HTTP layer needs, wired up in main.
type Deps struct {
	DB        *gorm.DB
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Wishlist  *service.WishlistService
	Checkout  *service.CheckoutService
	Orders    *service.OrderService
	ES        *elasticsearch.Client
	ESIndex   string
	JWTSecret []byte
}

func Register(e *echo.Echo, d Deps) {
	authH := &AuthHTTP{Svc: d.Auth}
	catalogH := &CatalogHTTP{Svc: d.Catalog}
	cartH := &CartHTTP{Svc: d.Cart}
	wishlistH := &WishlistHTTP{Svc: d.Wishlist}
	checkoutH := &CheckoutHTTP{Svc: d.Checkout}
	ordersH := &OrderHTTP{Svc: d.Orders}
	searchH := &SearchHTTP{ES: d.ES, Index: d.ESIndex}

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1")

	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.POST("/logout", authH.Logout)

	api.GET("/products", catalogH.GetProducts)
	api.GET("/products/:id", catalogH.GetProduct)
	api.GET("/search", searchH.Search)

	admin := api.Group("/admin", authmw.RequireAdmin(d.JWTSecret))
	admin.POST("/products", catalogH.CreateProduct)
	admin.PATCH("/products/:id", catalogH.PatchProduct)
	admin.DELETE("/products/:id", catalogH.DeleteProduct)
	admin.POST("/brands", catalogH.CreateBrand)
	admin.POST("/categories", catalogH.CreateCategory)

	user := api.Group("", authmw.RequireLogin(d.JWTSecret))
	user.GET("/cart", cartH.GetCart)
	user.POST("/cart", cartH.AddToCart)
	user.PATCH("/cart", cartH.UpdateItem)
	user.DELETE("/cart", cartH.RemoveItem)

	user.GET("/wishlist", wishlistH.Get)
	user.POST("/wishlist", wishlistH.Add)
	user.DELETE("/wishlist", wishlistH.Remove)

	user.POST("/checkout/preview", checkoutH.Preview)
	user.POST("/checkout/create-order", checkoutH.CreateOrder)

	user.GET("/orders", ordersH.ListOrders)
	user.GET("/orders/:id", ordersH.GetOrder)
	user.POST("/orders/:id/pay", ordersH.Pay)
	user.GET("/addresses", ordersH.ListAddresses)
}
