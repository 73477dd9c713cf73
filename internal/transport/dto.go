package transport

import "github.com/google/uuid"

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
}

type UpdateCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type RemoveCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

type CartLineView struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	Color     string    `json:"color,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	UnitPrice string    `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"lineTotal"`
	Currency  string    `json:"currency"`
}

type CartView struct {
	ID       uuid.UUID      `json:"id"`
	Items    []CartLineView `json:"items"`
	Subtotal string         `json:"subtotal"`
	Discount string         `json:"discount"`
	Tax      string         `json:"tax"`
	Shipping string         `json:"shipping"`
	Total    string         `json:"total"`
	Currency string         `json:"currency"`
}

type CartResponse struct {
	Cart CartView `json:"cart"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type AddWishlistItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

type WishlistView struct {
	ID       uuid.UUID   `json:"id"`
	Products []uuid.UUID `json:"products"`
}

type CheckoutItemRef struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type CheckoutPreviewRequest struct {
	Items       []CheckoutItemRef `json:"items"`
	UseWishlist bool              `json:"useWishlist"`
	UseCart     bool              `json:"useCart"`
}

type PreviewLine struct {
	ProductID uuid.UUID `json:"productId"`
	Title     string    `json:"title"`
	Color     string    `json:"color,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	UnitPrice string    `json:"unitPrice"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"lineTotal"`
	InStock   bool      `json:"inStock"`
	Link      string    `json:"link"`
}

type TotalsBlock struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type CheckoutPreviewResponse struct {
	Items    []PreviewLine `json:"items"`
	Totals   TotalsBlock   `json:"totals"`
	Currency string        `json:"currency"`
}

type ShippingAddress struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone"`
}

type CreateOrderRequest struct {
	Items                []CheckoutItemRef `json:"items"`
	UseWishlist          bool              `json:"useWishlist"`
	UseCart              bool              `json:"useCart"`
	ShippingAddress      ShippingAddress   `json:"shippingAddress"`
	SaveAddressAsDefault bool              `json:"saveAddressAsDefault"`
	Notes                string            `json:"notes"`
}

type CreateOrderResponse struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
}

type CreateProductImage struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type CreateProductRequest struct {
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	Price       string               `json:"price"`
	Currency    string               `json:"currency"`
	Stock       int                  `json:"stock"`
	Active      *bool                `json:"active"`
	Color       string               `json:"color"`
	BrandID     *uuid.UUID           `json:"brandId"`
	CategoryID  *uuid.UUID           `json:"categoryId"`
	Images      []CreateProductImage `json:"images"`
}

type PatchProductRequest struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Price       *string    `json:"price"`
	Currency    *string    `json:"currency"`
	Stock       *int       `json:"stock"`
	Active      *bool      `json:"active"`
	Color       *string    `json:"color"`
	BrandID     *uuid.UUID `json:"brandId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

type CreateTaxonRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
